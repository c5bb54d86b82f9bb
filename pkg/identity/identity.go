// Package identity turns raw free-text "First Last" strings into the
// canonical comparable form used for matching internal registrations
// against the external league roster.
package identity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/actonians/regsync/pkg/errors"
)

// KeyPrefixLen is the number of leading first-name characters folded
// into the index key.
const KeyPrefixLen = 3

// Identity is the canonical (first, last, key) triple for one person.
// Key is the comparison key used by the matcher: the normalized last
// name joined to the first KeyPrefixLen characters of the normalized
// first name. It is deterministic for a given (first, last) and stable
// under repeated normalization.
type Identity struct {
	First string
	Last  string
	Key   string
}

// String returns the display form "First Last".
func (id Identity) String() string {
	if id.First == "" {
		return id.Last
	}
	return id.First + " " + id.Last
}

// Normalize parses a raw name string into an Identity.
//
// The string is split on whitespace. Two tokens are the common
// "First Last" case. More than two tokens keep the final token as the
// last name and join the preceding tokens into one first name, so
// multi-word first and middle names survive. A single token becomes a
// last name with an empty first name. Blank input is an error.
func Normalize(raw string) (Identity, error) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return Identity{}, errors.NewNameError(raw, "no name tokens")
	}

	var first, last string
	switch len(tokens) {
	case 1:
		last = TitleCase(tokens[0])
	case 2:
		first = TitleCase(tokens[0])
		last = TitleCase(tokens[1])
	default:
		last = TitleCase(tokens[len(tokens)-1])
		parts := make([]string, 0, len(tokens)-1)
		for _, tok := range tokens[:len(tokens)-1] {
			parts = append(parts, TitleCase(tok))
		}
		first = strings.Join(parts, " ")
	}

	return Identity{
		First: first,
		Last:  last,
		Key:   key(first, last),
	}, nil
}

// TitleCase applies the canonical case rule to a name fragment: each
// token is lower-cased and then title-cased, correcting all-caps or
// mixed-case input. The rule is idempotent.
func TitleCase(s string) string {
	return cases.Title(language.English).String(strings.ToLower(s))
}

// key derives the index key from already-normalized name parts. A first
// name shorter than KeyPrefixLen contributes all of itself, unpadded.
func key(first, last string) string {
	prefix := []rune(first)
	if len(prefix) > KeyPrefixLen {
		prefix = prefix[:KeyPrefixLen]
	}
	return last + "_" + string(prefix)
}
