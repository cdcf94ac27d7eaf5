package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/abhisek/keydrill/internal/config"
	"github.com/abhisek/keydrill/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "keydrill",
	Short: "Keybinding drills in the terminal",
	Long: `keydrill asks for editor keybindings one drill at a time, checks every key
you press, and keeps asking until each drill has been answered correctly.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command. Ctrl+C outside raw mode cancels the
// command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(drillsCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the configuration for cmd from the --config file,
// the environment and the flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openLog creates the file logger. The closer must be called on exit.
func openLog(cfg *config.Config) (*logrus.Logger, io.Closer, error) {
	log, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return log, closer, nil
}
