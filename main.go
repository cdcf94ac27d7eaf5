package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/keydrill/cmd"
	"github.com/abhisek/keydrill/internal/drill"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, drill.ErrInterrupted) || errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "keydrill:", err)
		os.Exit(1)
	}
}
