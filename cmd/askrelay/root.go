package main

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"askrelay/internal/config"
	"askrelay/internal/httpapi"
)

// app carries state resolved once by the root command for every subcommand.
type app struct {
	configPath string
	logLevel   string
	envFile    string

	cfg config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "askrelay",
		Short:         "Relay for a hosted scoring endpoint and the scorer behind it",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (.yaml|.yml|.json|.toml); defaults to "+config.EnvConfig)
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug|info|warn|error (defaults to "+config.EnvLogLevel+" or info)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Dotenv file loaded before reading the environment; missing files are ignored")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.setup()
	}

	root.AddCommand(newRelayCmd(a), newScoreCmd(a), newAskCmd(a))
	return root
}

func (a *app) setup() error {
	if a.envFile != "" {
		// Existing environment variables win over the file.
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	path := a.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	cfg, err := config.Resolve(path)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg
	a.log = newLogger(cfg.LogLevel)
	httpapi.SetLogger(a.log)
	httpapi.SetRequestLogLevel(cfg.LogLevel)
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
