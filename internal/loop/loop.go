// Package loop runs playground sessions: a server owning the world and
// clients drawing it. Its subpackages hold the two halves; this package
// wires them for a single local player.
package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/tomz197/satplay/internal/loop/client"
	"github.com/tomz197/satplay/internal/loop/server"
)

// RunLocal starts a private server and runs one client on r and w until
// the client quits. The server stops when RunLocal returns.
func RunLocal(r *bufio.Reader, w io.Writer, opts client.ClientOptions) error {
	srv := server.NewServer(opts.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	return client.NewClient(srv, r, w, opts).Run()
}
