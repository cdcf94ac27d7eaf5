package cmd

import (
	"errors"
	"fmt"

	"github.com/abhisek/keydrill/internal/display"
	"github.com/abhisek/keydrill/internal/keys"
	"github.com/abhisek/keydrill/internal/terminal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show how key presses are decoded",
	Long: `Reads keys from the terminal and prints the name each one decodes to,
exactly as a drill would compare it. Press Ctrl+C to stop.

Useful for checking what a terminal sends for modified arrow keys.`,
	RunE: runKeys,
}

func runKeys(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	tty, err := terminal.Open(cfg.Device)
	if err != nil {
		return err
	}
	defer tty.Close()

	out := display.New(tty, cfg.Color)
	r := keys.NewReader(tty, cfg.EscapeWait, logrus.NewEntry(logger).WithField("command", "keys"))

	fmt.Fprintln(tty, "Press keys to see their names. Ctrl+C quits.")
	var prev keys.Key
	for {
		if err := cmd.Context().Err(); err != nil {
			return nil
		}
		k, err := r.ReadKey(prev)
		if errors.Is(err, keys.ErrInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		if k == keys.Interrupt {
			return nil
		}
		out.KeyReport(k)
		prev = k
	}
}
