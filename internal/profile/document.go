// Package profile models shell startup files as editable documents.
//
// A profile file is parsed into an ordered sequence of lines, each carrying
// its raw text and, when the line declares an environment variable, the
// parsed declaration. Edits replace whole lines by index instead of pattern
// substitution, so quoting variance and repeated declarations elsewhere in
// the file are never disturbed.
//
// Two declaration grammars are recognized on read: the POSIX form
// `export NAME=VALUE` (optionally quoted) and the fish form
// `set --export NAME VALUE`. New declarations are always emitted in the
// POSIX form; in-place replacements keep the grammar of the line they
// replace so a fish file is never corrupted by a POSIX line.
package profile

import "strings"

// Grammar identifies the declaration syntax of a profile file.
type Grammar int

const (
	// POSIX covers sh, bash, and zsh profile files.
	POSIX Grammar = iota
	// Fish covers the fish shell's config file.
	Fish
)

// String returns the grammar name for logs and reports.
func (g Grammar) String() string {
	if g == Fish {
		return "fish"
	}
	return "posix"
}

// Declaration is a parsed variable declaration found on a single line.
// Value is the literal text as written: no shell expansion is performed, so
// a value like `$PATH:/opt/x` keeps its dollar reference.
type Declaration struct {
	Name    string
	Value   string
	Grammar Grammar
}

// Line is one physical line of a profile file. Decl is nil for lines that do
// not declare a variable (comments, commands, blanks).
type Line struct {
	Raw  string
	Decl *Declaration
}

// Document is a parsed profile file.
type Document struct {
	Path  string
	Lines []Line
}

// Parse splits data into lines and recognizes declarations per grammar.
// The final newline, if any, is not represented as an extra empty line.
func Parse(path string, data []byte, grammar Grammar) *Document {
	doc := &Document{Path: path}
	if len(data) == 0 {
		return doc
	}

	text := strings.TrimSuffix(string(data), "\n")
	for _, raw := range strings.Split(text, "\n") {
		line := Line{Raw: raw}
		if decl := parseLine(raw, grammar); decl != nil {
			line.Decl = decl
		}
		doc.Lines = append(doc.Lines, line)
	}
	return doc
}

// Declarations returns the indexes of every line declaring name, in file
// order.
func (d *Document) Declarations(name string) []int {
	var indexes []int
	for i, line := range d.Lines {
		if line.Decl != nil && line.Decl.Name == name {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// Value returns the value of the first declaration of name.
func (d *Document) Value(name string) (string, bool) {
	for _, line := range d.Lines {
		if line.Decl != nil && line.Decl.Name == name {
			return line.Decl.Value, true
		}
	}
	return "", false
}

// Names returns every declared variable name in file order, first
// declaration only.
func (d *Document) Names() []string {
	var names []string
	seen := make(map[string]bool)
	for _, line := range d.Lines {
		if line.Decl != nil && !seen[line.Decl.Name] {
			seen[line.Decl.Name] = true
			names = append(names, line.Decl.Name)
		}
	}
	return names
}

// SetValueAt replaces the declaration line at index idx with a new value,
// keeping the declared name and the line's grammar. It is a no-op when idx
// does not address a declaration line.
func (d *Document) SetValueAt(idx int, value string) {
	if idx < 0 || idx >= len(d.Lines) || d.Lines[idx].Decl == nil {
		return
	}
	decl := *d.Lines[idx].Decl
	decl.Value = value
	d.Lines[idx] = Line{Raw: renderDeclaration(decl), Decl: &decl}
}

// RemoveAt drops the lines at the given indexes. Indexes may arrive in any
// order; out-of-range indexes are ignored.
func (d *Document) RemoveAt(indexes ...int) {
	if len(indexes) == 0 {
		return
	}
	drop := make(map[int]bool, len(indexes))
	for _, idx := range indexes {
		drop[idx] = true
	}
	kept := d.Lines[:0]
	for i, line := range d.Lines {
		if !drop[i] {
			kept = append(kept, line)
		}
	}
	d.Lines = kept
}

// AppendExport appends a POSIX export declaration at the end of the
// document.
func (d *Document) AppendExport(name, value string) {
	decl := Declaration{Name: name, Value: value, Grammar: POSIX}
	d.Lines = append(d.Lines, Line{Raw: renderDeclaration(decl), Decl: &decl})
}

// Bytes renders the document. A non-empty document always ends with a single
// trailing newline.
func (d *Document) Bytes() []byte {
	if len(d.Lines) == 0 {
		return []byte{}
	}
	var b strings.Builder
	for _, line := range d.Lines {
		b.WriteString(line.Raw)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
