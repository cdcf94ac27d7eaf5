package cmd

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/abhisek/keydrill/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"short", "Exit Vim.", 60, "Exit Vim."},
		{"exact", "abcdef", 6, "abcdef"},
		{"ascii", "abcdefgh", 6, "abc..."},
		{"multibyte", "Ersetze über äöü", 10, "Ersetze..."},
		{"cut inside accents", "äöüäöüäöü", 6, "äöü..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.width)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	doc := `
drills:
  - prompt: "Switch to the next window."
    keys: "C-w,C-w"
    subtasks:
      - prompt: "Swap the position of the current window with another."
        keys: "C-w,r"
  - prompt: "Exit Vim."
    keys: ":,q"
`
	c, err := catalog.Parse([]byte(doc))
	require.NoError(t, err)
	return c
}

func TestListDrills_All(t *testing.T) {
	var buf bytes.Buffer
	listDrills(&buf, testCatalog(t), "")

	out := buf.String()
	assert.Contains(t, out, "Switch to the next window.")
	assert.Contains(t, out, "  Swap the position")
	assert.Contains(t, out, "Exit Vim.")
	assert.Contains(t, out, "3 of 3 drills")
}

func TestListDrills_SearchMatchesSubTasks(t *testing.T) {
	var buf bytes.Buffer
	listDrills(&buf, testCatalog(t), "SWAP")

	out := buf.String()
	assert.Contains(t, out, "Switch to the next window.")
	assert.Contains(t, out, "Swap the position")
	assert.NotContains(t, out, "Exit Vim.")
	assert.Contains(t, out, "2 of 3 drills")
}

func TestListDrills_ColumnsAlignWithMultibytePrompts(t *testing.T) {
	c, err := catalog.Parse([]byte("drills:\n  - prompt: \"Lösche die Zeile.\"\n    keys: \"d,d\"\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	listDrills(&buf, c, "")

	for _, line := range strings.Split(buf.String(), "\n") {
		if !strings.Contains(line, "Lösche") {
			continue
		}
		keysAt := strings.Index(line, `"dd"`)
		require.Positive(t, keysAt)
		assert.Equal(t, 4+2+promptWidth+2, utf8.RuneCountInString(line[:keysAt]))
	}
}
