package main

import (
	"bufio"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"chdbatch/internal/config"
	"chdbatch/internal/console"
	"chdbatch/internal/logging"
	"chdbatch/internal/session"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "chdbatch",
		Short:         "Batch convert disc images with chdman",
		Long:          "chdbatch imports ISO, CUE/BIN, GDI, CHD and ZIP files and runs chdman over them from an arrow-key menu.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return runSession(cmd, cfg)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))

	return rootCmd
}

func runSession(cmd *cobra.Command, cfg *config.Config) error {
	logger, err := logging.NewFromConfig(cfg, uuid.NewString())
	if err != nil {
		return err
	}
	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, cfg.Paths.LogDir, "*.log", cfg.LogPath())

	stdin := cmd.InOrStdin()
	in := bufio.NewReader(stdin)
	var terminal *os.File
	if f, ok := stdin.(*os.File); ok {
		terminal = f
	}
	keys := console.NewKeyReader(in, terminal)
	screen := console.NewScreen(console.Options{
		Out:    cmd.OutOrStdout(),
		Width:  cfg.Menu.Width,
		Color:  cfg.Menu.Color,
		Keys:   keys,
		Logger: logger,
	})

	s, err := session.New(session.Options{
		Config: cfg,
		In:     in,
		Keys:   keys,
		Screen: screen,
		Logger: logger,
		AppDir: config.ApplicationDir(),
	})
	if err != nil {
		return err
	}
	return s.Run(cmd.Context())
}
