package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abhisek/keydrill/internal/catalog"
	"github.com/spf13/cobra"
)

const promptWidth = 60

var drillsCmd = &cobra.Command{
	Use:   "drills",
	Short: "List the drills in the catalog (optionally filtered)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := catalog.Load(cfg.Catalog)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		search, _ := cmd.Flags().GetString("search")
		listDrills(os.Stdout, cat, search)
		return nil
	},
}

// listDrills prints every top-level drill whose prompt, or any sub-task
// prompt, contains search. The footer counts sub-tasks too.
func listDrills(w io.Writer, cat *catalog.Catalog, search string) {
	search = strings.ToLower(search)

	// Header.
	fmt.Fprintf(w, "%4s  %-*s  %s\n", "#", promptWidth, "Prompt", "Keys")
	fmt.Fprintln(w, strings.Repeat("─", 90))

	shown := 0
	for i, d := range cat.Drills {
		if search != "" && !matches(d, search) {
			continue
		}
		shown += printDrill(w, fmt.Sprintf("%d", i+1), d, 0)
	}

	fmt.Fprintf(w, "\n%d of %d drills\n", shown, cat.Count())
}

func matches(d catalog.Drill, search string) bool {
	if strings.Contains(strings.ToLower(d.Prompt), search) {
		return true
	}
	for _, sub := range d.Subtasks {
		if matches(sub, search) {
			return true
		}
	}
	return false
}

// printDrill prints d and its sub-tasks and returns how many lines it wrote.
func printDrill(w io.Writer, label string, d catalog.Drill, depth int) int {
	prompt := truncate(strings.Repeat("  ", depth)+strings.TrimSpace(d.Prompt), promptWidth)
	fmt.Fprintf(w, "%4s  %s%s  %q\n", label, prompt,
		strings.Repeat(" ", promptWidth-len([]rune(prompt))), strings.ReplaceAll(d.Keys, ",", ""))
	n := 1
	for _, sub := range d.Subtasks {
		n += printDrill(w, "", sub, depth+1)
	}
	return n
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

func init() {
	drillsCmd.Flags().String("search", "", "Only list drills whose prompt or sub-task prompts contain this text")
}
