// Package loop wires a session to a terminal client for local play.
package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/strike/internal/draw"
	"github.com/tomz197/strike/internal/loop/client"
	"github.com/tomz197/strike/internal/loop/session"
)

// Options configures a local game.
type Options struct {
	Session      session.Options
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
}

// Run plays one local game on the terminal behind r and w. It blocks until
// the player quits or ctx is cancelled, then stops the session.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if opts.Session.Logger == nil {
		opts.Session.Logger = opts.Logger
	}
	s := session.New(opts.Session)
	go s.Run(ctx)

	c := client.NewClient(s, bufio.NewReader(r), w, client.ClientOptions{
		TermSizeFunc: opts.TermSizeFunc,
		Logger:       opts.Logger,
	})
	err := c.Run(ctx)

	cancel()
	<-s.Done()
	return err
}
