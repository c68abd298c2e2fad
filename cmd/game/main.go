package main

import (
	"bufio"
	"io"
	"os"

	"github.com/tomz197/satplay/internal/config"
	"github.com/tomz197/satplay/internal/loop"
	"github.com/tomz197/satplay/internal/loop/client"
	"golang.org/x/term"
)

func main() {
	logger := config.NewLogger(os.Stderr, "satplay")

	// The terminal belongs to the canvas while playing, so session logs go
	// to LOG_FILE when it is set and are dropped otherwise.
	sessionOut := io.Discard
	if path := config.GetEnv("LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logger.Fatal("Failed to open log file", "path", path, "error", err)
		}
		defer f.Close()
		sessionOut = f
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("Failed to enable raw mode", "error", err)
	}

	reader := bufio.NewReader(os.Stdin)
	err = loop.RunLocal(reader, os.Stdout, client.ClientOptions{
		Username: config.GetEnv("USER", "local"),
		Logger:   config.NewLogger(sessionOut, "satplay"),
	})
	_ = term.Restore(fd, oldState)

	if err != nil {
		logger.Error("Game error", "error", err)
		os.Exit(1)
	}
}
