package cmd

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/keydrill/internal/catalog"
	"github.com/abhisek/keydrill/internal/display"
	"github.com/abhisek/keydrill/internal/drill"
	"github.com/abhisek/keydrill/internal/keys"
	"github.com/abhisek/keydrill/internal/session"
	"github.com/abhisek/keydrill/internal/terminal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// runApp loads the catalog, opens the terminal and runs one session.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	rng := newRand(cfg.Seed)
	tree := drill.NewTree(rng)
	ids, err := cat.Build(tree)
	if err != nil {
		return fmt.Errorf("build drills: %w", err)
	}

	tty, err := terminal.Open(cfg.Device)
	if err != nil {
		return err
	}
	defer tty.Close()

	out := display.New(tty, cfg.Color)
	log := logrus.NewEntry(logger)
	runner := &drill.Runner{
		Tree: tree,
		Out:  out,
		Rand: rng,
		Pace: cfg.Pace,
	}

	s, err := session.New(session.Options{
		Pool:     session.NewPool(ids),
		Exec:     runner,
		Screen:   out,
		Rand:     rng,
		Describe: describeDrill(tree),
		Log:      log,
	})
	if err != nil {
		return err
	}

	log = log.WithField("session_id", s.ID)
	runner.Log = log
	runner.Keys = keys.NewReader(tty, cfg.EscapeWait, log)

	sum, err := s.Run(cmd.Context())
	fmt.Fprintln(tty)
	out.Summary(sum)
	return err
}

// newRand returns a PCG-backed source. Seed zero draws a random seed.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func describeDrill(tree *drill.Tree) func(drill.ID) string {
	return func(id drill.ID) string {
		if t := tree.Task(id); t != nil {
			return t.Base.Prompt
		}
		return fmt.Sprintf("drill %d", id)
	}
}
