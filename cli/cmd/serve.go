package cmd

import (
	"context"
	"time"

	"github.com/ardnew/dragon/server"
)

// Serve exposes the catalog over HTTP.
type Serve struct {
	Addr     string        `default:":8080"          help:"Listen address"                              short:"a"`
	Timeout  time.Duration `default:"${playTimeout}" help:"Abort each play after this long"`
	Record   bool          `help:"Record every play in the play history" short:"r"`
	MaxDepth int           `default:"${maxDepth}"    help:"Maximum nested function call depth"`
}

// Run executes the serve command. It returns when ctx is done.
func (s *Serve) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	catalog, err := catalogFrom(ctx)
	if err != nil {
		return err
	}

	opts := []server.Option{
		server.WithLogger(loggerFrom(ctx, ComponentServer)),
		server.WithTimeout(s.Timeout),
		server.WithMaxDepth(s.MaxDepth),
	}

	if s.Record {
		st, err := openHistory(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		opts = append(opts, server.WithStore(st))
	}

	return server.New(catalog, opts...).ListenAndServe(ctx, s.Addr)
}
