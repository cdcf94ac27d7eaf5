// Package catalog loads the drill catalog and builds the task tree from it.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/abhisek/keydrill/internal/drill"
	"github.com/abhisek/keydrill/internal/keys"
	"github.com/abhisek/keydrill/internal/randomize"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed drills.yaml
var builtin []byte

const schemaURL = "schema://keydrill-catalog.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Drill is one catalog entry.
type Drill struct {
	Prompt   string  `yaml:"prompt" json:"prompt"`
	Keys     string  `yaml:"keys" json:"keys"`
	Subtasks []Drill `yaml:"subtasks,omitempty" json:"subtasks,omitempty"`
}

// Catalog is a parsed, validated list of drills.
type Catalog struct {
	Drills []Drill `yaml:"drills" json:"drills"`
}

// ValidationError collects every problem found in a catalog document.
type ValidationError struct {
	Problems []string
	Err      error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid catalog: %v", e.Err)
	}
	return "invalid catalog:\n  " + strings.Join(e.Problems, "\n  ")
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Builtin returns the embedded drill catalog.
func Builtin() (*Catalog, error) {
	return Parse(builtin)
}

// Load reads a catalog from path. An empty path selects the builtin one.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Builtin()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document and validates it.
func Parse(data []byte) (*Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	// Round-trip through JSON so the validator sees plain JSON values.
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	schema, err := catalogSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(inst); err != nil {
		return nil, &ValidationError{Err: err}
	}

	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if problems := validateDrills(c.Drills, ""); len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	return &c, nil
}

// Count returns the number of drills, sub-tasks included.
func (c *Catalog) Count() int {
	return countDrills(c.Drills)
}

// Build adds every drill to tree and returns the top-level task IDs.
func (c *Catalog) Build(tree *drill.Tree) ([]drill.ID, error) {
	ids := make([]drill.ID, 0, len(c.Drills))
	for _, d := range c.Drills {
		id := tree.Add(d.Prompt, d.Keys)
		if err := addSubtasks(tree, id, d.Subtasks); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func addSubtasks(tree *drill.Tree, parent drill.ID, subs []Drill) error {
	for _, s := range subs {
		id, err := tree.AddChild(parent, s.Prompt, s.Keys)
		if err != nil {
			return fmt.Errorf("build catalog: %w", err)
		}
		if err := addSubtasks(tree, id, s.Subtasks); err != nil {
			return err
		}
	}
	return nil
}

func countDrills(ds []Drill) int {
	n := len(ds)
	for _, d := range ds {
		n += countDrills(d.Subtasks)
	}
	return n
}

func catalogSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants parsed JSON values, not Go literals.
		defBytes, err := json.Marshal(schemaDefinition)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		def, err := jsonschema.UnmarshalJSON(strings.NewReader(string(defBytes)))
		if err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validateDrills performs the structural checks the schema cannot express.
func validateDrills(ds []Drill, path string) []string {
	var problems []string
	for i, d := range ds {
		where := fmt.Sprintf("%sdrills[%d]", path, i)

		for _, tok := range strings.Split(d.Keys, ",") {
			if tok == "" {
				problems = append(problems, fmt.Sprintf("%s: empty key token in %q", where, d.Keys))
				break
			}
		}
		for _, tok := range strings.Split(d.Keys, ",") {
			if tok != "" && !typeable(tok) {
				problems = append(problems, fmt.Sprintf("%s: key token %q cannot be typed as one key", where, tok))
			}
		}

		for _, field := range []string{d.Prompt, d.Keys} {
			for _, m := range randomize.Placeholders(field) {
				if !randomize.Known(m) {
					problems = append(problems, fmt.Sprintf("%s: unknown placeholder %s", where, m))
				}
			}
		}

		for _, m := range randomize.Placeholders(d.Keys) {
			if randomize.Known(m) && !strings.Contains(d.Prompt, m) {
				problems = append(problems, fmt.Sprintf("%s: placeholder %s in keys is missing from the prompt", where, m))
			}
		}

		problems = append(problems, validateDrills(d.Subtasks, where+".")...)
	}
	return problems
}

// typeable reports whether a single key press can produce tok. Placeholder
// markers are checked separately. Escape and the interrupt key are never
// delivered to a drill.
func typeable(tok string) bool {
	if ms := randomize.Placeholders(tok); len(ms) == 1 && ms[0] == tok {
		return true
	}
	k := keys.Key(tok)
	if k == keys.Escape || k == keys.Interrupt {
		return false
	}
	return len(tok) == 1 || k.Named()
}
