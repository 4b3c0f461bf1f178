package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/ardnew/dragon/game"
	"github.com/ardnew/dragon/lang"
	"github.com/ardnew/dragon/level"
	"github.com/ardnew/dragon/log"
	"github.com/ardnew/dragon/store"
)

// DefaultTimeout bounds the evaluation of a single play.
const DefaultTimeout = 5 * time.Second

// DefaultMaxBody bounds the size of a script.
const DefaultMaxBody = 64 << 10

const contentTypeJSON = "application/json"

// ErrServe is returned when the listener fails.
//
//nolint:gochecknoglobals
var ErrServe = lang.NewError("server failed")

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger log.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithTimeout bounds each play. Values less than 1 select [DefaultTimeout].
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d <= 0 {
			d = DefaultTimeout
		}

		s.timeout = d
	}
}

// WithStore records every play in st.
func WithStore(st *store.Store) Option {
	return func(s *Server) { s.store = st }
}

// WithMaxDepth bounds nested user-function calls in a play.
func WithMaxDepth(depth int) Option {
	return func(s *Server) { s.maxDepth = depth }
}

// Server serves a level catalog.
type Server struct {
	catalog  *level.Catalog
	logger   log.Logger
	store    *store.Store
	timeout  time.Duration
	maxDepth int
	srv      *fasthttp.Server
}

// New returns a server for catalog.
func New(catalog *level.Catalog, opts ...Option) *Server {
	s := &Server{
		catalog:  catalog,
		timeout:  DefaultTimeout,
		maxDepth: lang.DefaultMaxDepth,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.srv = &fasthttp.Server{
		Handler:            s.Handle,
		Name:               "dragon",
		ReadTimeout:        15 * time.Second,
		WriteTimeout:       s.timeout + 15*time.Second,
		MaxRequestBodySize: DefaultMaxBody,
	}

	return s
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errc := make(chan error, 1)

	go func() { errc <- s.srv.Serve(ln) }()

	s.logger.InfoContext(ctx, "serving", slog.String("addr", ln.Addr().String()))

	select {
	case err := <-errc:
		if err != nil {
			return ErrServe.Wrap(err)
		}

		return nil

	case <-ctx.Done():
		if err := s.srv.Shutdown(); err != nil {
			return ErrServe.Wrap(err)
		}

		return nil
	}
}

// ListenAndServe listens on the TCP address addr and serves until ctx is
// done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return ErrServe.Wrap(err).With(slog.String("addr", addr))
	}

	return s.Serve(ctx, ln)
}

// Handle routes a request.
func (s *Server) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()

	defer func() {
		s.logger.DebugContext(ctx, "request",
			slog.String("method", string(ctx.Method())),
			slog.String("path", string(ctx.Path())),
			slog.Int("status", ctx.Response.StatusCode()),
			slog.Duration("elapsed", time.Since(start)))
	}()

	parts := strings.Split(strings.Trim(string(ctx.Path()), "/"), "/")

	switch {
	case len(parts) == 1 && parts[0] == "levels":
		if s.allow(ctx, fasthttp.MethodGet) {
			s.writeJSON(ctx, fasthttp.StatusOK, summaries(s.catalog))
		}

	case len(parts) == 2 && parts[0] == "levels":
		if s.allow(ctx, fasthttp.MethodGet) {
			s.handleLevel(ctx, parts[1])
		}

	case len(parts) == 3 && parts[0] == "levels" && parts[2] == "play":
		if s.allow(ctx, fasthttp.MethodPost) {
			s.handlePlay(ctx, parts[1])
		}

	default:
		s.writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func (s *Server) allow(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) == method {
		return true
	}

	ctx.Response.Header.Set(fasthttp.HeaderAllow, method)
	s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")

	return false
}

func (s *Server) lookup(ctx *fasthttp.RequestCtx, id string) (*level.Definition, bool) {
	d, err := s.catalog.Lookup(id)
	if err != nil {
		if errors.Is(err, level.ErrLevelNotFound) {
			s.writeError(ctx, fasthttp.StatusNotFound, err.Error())
		} else {
			s.writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		}

		return nil, false
	}

	return d, true
}

func (s *Server) handleLevel(ctx *fasthttp.RequestCtx, id string) {
	if d, ok := s.lookup(ctx, id); ok {
		s.writeJSON(ctx, fasthttp.StatusOK, d)
	}
}

func (s *Server) handlePlay(ctx *fasthttp.RequestCtx, id string) {
	d, ok := s.lookup(ctx, id)
	if !ok {
		return
	}

	opts := []game.Option{
		game.WithLogger(s.logger),
		game.WithMaxDepth(s.maxDepth),
		game.WithStrictExclusions(ctx.QueryArgs().GetBool("strict")),
	}

	if arg := ctx.QueryArgs().Peek("seed"); len(arg) > 0 {
		seed, err := strconv.ParseUint(string(arg), 10, 64)
		if err != nil {
			s.writeError(ctx, fasthttp.StatusBadRequest, "invalid seed: "+string(arg))

			return
		}

		opts = append(opts, game.WithSeed(seed))
	}

	g, err := game.New(d, opts...)
	if err != nil {
		s.writeError(ctx, fasthttp.StatusInternalServerError, err.Error())

		return
	}

	script := string(ctx.PostBody())

	pctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := g.Play(pctx, script)
	if err != nil {
		s.writeError(ctx, fasthttp.StatusInternalServerError, err.Error())

		return
	}

	if s.store != nil {
		if err := s.store.Save(ctx, store.NewRecord(d.ID, script, res)); err != nil {
			s.logger.WarnContext(ctx, "play not recorded", slog.Any("error", err))
		}
	}

	s.writeJSON(ctx, fasthttp.StatusOK, PlayResponse{Result: res, Frames: g.Frames()})
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	buf, err := json.Marshal(v)
	if err != nil {
		s.logger.ErrorContext(ctx, "encode response", slog.Any("error", err))
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)

		return
	}

	ctx.SetStatusCode(status)
	ctx.SetContentType(contentTypeJSON)
	ctx.SetBody(buf)
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, msg string) {
	s.writeJSON(ctx, status, ErrorResponse{Error: msg})
}
