// Package randomize fills the placeholders of a drill template with random
// letters, small integers and words.
package randomize

import (
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
)

// Placeholder markers, in the order they are applied.
var markers = []string{
	"<randc1>", "<randc2>", "<randc3>",
	"<rints1>", "<rints2>", "<rints3>",
	"<w1>", "<w2>", "<w3>",
}

const letters = "abcdefghijklmnopqrstuvwxyz"

// Words is the fixed list <w1>..<w3> draw from.
var Words = []string{
	"apple", "banana", "cherry", "date", "elderberry", "fig", "grape",
	"honeydew", "kiwi", "lemon", "mango", "nectarine", "orange", "pear",
	"quince", "raspberry", "strawberry", "tangerine", "watermelon", "yam",
	"zucchini",
}

// MinInt and MaxInt bound the values drawn for <rints1>..<rints3>.
const (
	MinInt = 2
	MaxInt = 5
)

var markerPattern = regexp.MustCompile(`<[^<>,\s]+>`)

// Template pairs a prompt with its comma-separated expected keys.
type Template struct {
	Prompt string
	Keys   string
}

// Expected returns the expected key tokens in order.
func (t Template) Expected() []string {
	return strings.Split(t.Keys, ",")
}

// ExpectedText returns the expected keys with the separators removed.
func (t Template) ExpectedText() string {
	return strings.ReplaceAll(t.Keys, ",", "")
}

// Assignment maps each placeholder marker to the value substituted for it.
type Assignment map[string]string

// NewAssignment draws one value per placeholder.
func NewAssignment(rng *rand.Rand) Assignment {
	a := make(Assignment, len(markers))
	for i := 1; i <= 3; i++ {
		n := strconv.Itoa(i)
		a["<randc"+n+">"] = string(letters[rng.IntN(len(letters))])
		a["<rints"+n+">"] = strconv.Itoa(MinInt + rng.IntN(MaxInt-MinInt+1))
		a["<w"+n+">"] = Words[rng.IntN(len(Words))]
	}
	return a
}

// Apply substitutes a into t. The prompt receives each value as is; the keys
// receive the value's characters as separate comma-joined tokens, so "mango"
// becomes "m,a,n,g,o". The bool reports whether anything was replaced.
func Apply(a Assignment, t Template) (Template, bool) {
	out := t
	for _, m := range markers {
		v, ok := a[m]
		if !ok {
			continue
		}
		out.Prompt = strings.ReplaceAll(out.Prompt, m, v)
		out.Keys = strings.ReplaceAll(out.Keys, m, spell(v))
	}
	return out, out != t
}

// Known reports whether marker is one of the supported placeholders.
func Known(marker string) bool {
	for _, m := range markers {
		if m == marker {
			return true
		}
	}
	return false
}

// Placeholders returns every <...> marker found in s, in order of appearance.
func Placeholders(s string) []string {
	return markerPattern.FindAllString(s, -1)
}

func spell(v string) string {
	return strings.Join(strings.Split(v, ""), ",")
}
