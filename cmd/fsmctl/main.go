package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/comalice/historyfsm"
	"github.com/comalice/historyfsm/internal/console"
)

// Settings configures fsmctl. Values come from the environment (and an
// optional .env file); flags override them.
type Settings struct {
	ConfigPath  string `env:"FSMCTL_CONFIG" envDefault:"machine.yaml"`
	LogLevel    string `env:"FSMCTL_LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"FSMCTL_LOG_FORMAT" envDefault:"text"`
	Strict      bool   `env:"FSMCTL_STRICT"`
	StopOnError bool   `env:"FSMCTL_STOP_ON_ERROR"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The .env file is optional.
	_ = godotenv.Load()

	if err := run(ctx, os.Args[1:], nil, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "fsmctl:", err)
		os.Exit(1)
	}
}

// run loads settings and the machine definition, then interprets commands
// from stdin. environ overrides the process environment when not nil.
func run(ctx context.Context, args []string, environ map[string]string, stdin io.Reader, stdout, stderr io.Writer) error {
	s, err := loadSettings(args, environ)
	if err != nil {
		return err
	}

	logger, err := newLogger(s, stderr)
	if err != nil {
		return err
	}

	cfg, err := historyfsm.LoadConfigFile(s.ConfigPath)
	if err != nil {
		return err
	}
	if s.Strict {
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	m, err := historyfsm.New(cfg, historyfsm.WithLogger(logger.With("component", "fsm")))
	if err != nil {
		return err
	}
	logger.Info("machine loaded", "config", s.ConfigPath, "initial", m.Initial(), "states", len(m.States("")))

	in := console.New(m, stdout, logger.With("component", "console"))
	in.StopOnError = s.StopOnError
	if err := in.Run(ctx, stdin); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func loadSettings(args []string, environ map[string]string) (Settings, error) {
	var s Settings
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&s, opts); err != nil {
		return Settings{}, fmt.Errorf("parse environment: %w", err)
	}

	fs := flag.NewFlagSet("fsmctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&s.ConfigPath, "config", s.ConfigPath, "machine definition file (YAML or JSON)")
	fs.BoolVar(&s.Strict, "strict", s.Strict, "validate the definition before running")
	fs.BoolVar(&s.StopOnError, "stop-on-error", s.StopOnError, "exit on the first failing command")
	if err := fs.Parse(args); err != nil {
		return Settings{}, err
	}
	if fs.NArg() > 0 {
		s.ConfigPath = fs.Arg(0)
	}
	return s, nil
}

func newLogger(s Settings, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", s.LogLevel, err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(s.LogFormat) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("log format %q: want text or json", s.LogFormat)
	}
}
