package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	WithComponent(name string) Logger

	// Printf satisfies fx's printer so the DI container logs through us.
	Printf(format string, args ...any)
}

type Opts struct {
	Env       string
	Verbose   bool
	SentryDSN string
}

type Impl struct {
	sl *slog.Logger
}

var _ Logger = (*Impl)(nil)

// New builds a slog logger fanned out to a zerolog handler (console
// writer outside production) and, when a DSN is configured, a Sentry
// handler for warnings and errors.
func New(opts Opts) *Impl {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	if opts.Env != "production" {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	zl := zerolog.New(out).With().Timestamp().Logger()

	handlers := []slog.Handler{
		slogzerolog.Option{Level: level, Logger: &zl}.NewZerologHandler(),
	}

	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryDSN,
			Environment: opts.Env,
		})
		if err != nil {
			zl.Warn().Err(err).Msg("Failed to initialize sentry, continuing without it")
		} else {
			handlers = append(handlers, slogsentry.Option{Level: slog.LevelWarn}.NewSentryHandler())
		}
	}

	return &Impl{sl: slog.New(slogmulti.Fanout(handlers...))}
}

// NewNop returns a logger that discards everything. Intended for tests.
func NewNop() *Impl {
	return &Impl{sl: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (i *Impl) Debug(msg string, args ...any) { i.sl.Debug(msg, args...) }
func (i *Impl) Info(msg string, args ...any)  { i.sl.Info(msg, args...) }
func (i *Impl) Warn(msg string, args ...any)  { i.sl.Warn(msg, args...) }
func (i *Impl) Error(msg string, args ...any) { i.sl.Error(msg, args...) }

func (i *Impl) WithComponent(name string) Logger {
	return &Impl{sl: i.sl.With("component", name)}
}

func (i *Impl) Printf(format string, args ...any) {
	i.sl.Debug(fmt.Sprintf(format, args...))
}
