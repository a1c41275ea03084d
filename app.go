package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"linealign/config"
	"linealign/logger"
)

// app carries state shared by all commands during one invocation.
type app struct {
	configPath string
	logLevel   string
	logFile    string

	cfg *config.Config
	log *logger.Logger
}

func newApp() *app {
	return &app{}
}

func (a *app) rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "linealign",
		Short:         "Align the lines of two documents by similarity",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Configuration file path (default ./"+config.ProjectConfigFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(a.alignCommand())
	rootCmd.AddCommand(a.mapCommand())
	rootCmd.AddCommand(a.normalizeCommand())
	rootCmd.AddCommand(a.configCommand())

	return rootCmd
}

// setup loads the configuration and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, path, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFile != "" {
		cfg.Logging.File = a.logFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level, _ := logger.ParseLogLevel(cfg.Logging.Level)
	if cfg.Logging.File != "" {
		l, err := logger.NewFileLogger(cfg.Logging.File, level)
		if err != nil {
			return err
		}
		a.log = l
	} else {
		a.log = logger.New(cmd.ErrOrStderr(), level)
	}
	logger.SetDefault(a.log)

	if path != "" {
		logger.Debug("config: loaded %s", path)
	}
	return nil
}

func (a *app) close() {
	if a.log == nil {
		return
	}
	logger.SetDefault(nil)
	if err := a.log.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close log: %v\n", err)
	}
	a.log = nil
}
