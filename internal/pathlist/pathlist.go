// Package pathlist parses, analyzes, and edits PATH-like variable values.
//
// A PATH-like value is an ordered, colon-delimited list of filesystem
// locations. The package operates purely on string values: it never touches
// the backing stores. Empty entries (adjacent colons) are preserved
// positionally and never silently dropped, because shells treat an empty
// entry as "current directory" and dropping one would change behavior.
package pathlist

import "strings"

// Separator joins entries of a PATH-like value.
const Separator = ":"

// Entry is a single list element. Position is 1-based. Exists and
// Occurrences are populated by Analyze; Parse leaves them zero.
type Entry struct {
	Position    int
	Text        string
	Exists      bool
	Occurrences int
}

// List is an ordered sequence of entries parsed from a PATH-like value.
type List []Entry

// Mode selects how Combine merges a new entry into an existing value.
type Mode int

const (
	// Append places the entry after all existing entries.
	Append Mode = iota
	// Prepend places the entry before all existing entries.
	Prepend
	// Replace discards the existing value entirely.
	Replace
)

// String returns the prompt/report name of the mode.
func (m Mode) String() string {
	switch m {
	case Append:
		return "append"
	case Prepend:
		return "prepend"
	case Replace:
		return "replace"
	default:
		return "unknown"
	}
}

// Parse splits value on ":" preserving empty entries and order. An empty
// value parses to an empty list, not to a single empty entry.
func Parse(value string) List {
	if value == "" {
		return List{}
	}
	parts := strings.Split(value, Separator)
	list := make(List, len(parts))
	for i, p := range parts {
		list[i] = Entry{Position: i + 1, Text: p}
	}
	return list
}

// Join is the inverse of Parse.
func (l List) Join() string {
	texts := make([]string, len(l))
	for i, e := range l {
		texts[i] = e.Text
	}
	return strings.Join(texts, Separator)
}

// Contains reports whether any entry matches text exactly. There is no path
// normalization: symlinked or trailing-slash variants are distinct entries.
func (l List) Contains(text string) bool {
	for _, e := range l {
		if e.Text == text {
			return true
		}
	}
	return false
}

// Positions returns the 1-based positions of every entry matching text.
func (l List) Positions(text string) []int {
	var positions []int
	for _, e := range l {
		if e.Text == text {
			positions = append(positions, e.Position)
		}
	}
	return positions
}

// Remove drops every entry matching text exactly, preserving the order of the
// remaining entries and renumbering their positions. It returns the new list
// and the number of entries removed.
func (l List) Remove(text string) (List, int) {
	kept := make(List, 0, len(l))
	removed := 0
	for _, e := range l {
		if e.Text == text {
			removed++
			continue
		}
		e.Position = len(kept) + 1
		kept = append(kept, e)
	}
	return kept, removed
}

// Combine merges entry into the current raw value according to mode.
// Appending or prepending to an empty value yields the entry alone, never a
// leading or trailing separator.
func Combine(current, entry string, mode Mode) string {
	if mode == Replace {
		return entry
	}
	if current == "" {
		return entry
	}
	if mode == Prepend {
		return entry + Separator + current
	}
	return current + Separator + entry
}
