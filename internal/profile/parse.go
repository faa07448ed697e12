package profile

import "strings"

// parseLine recognizes a declaration on a single line, returning nil when
// the line declares nothing.
func parseLine(raw string, grammar Grammar) *Declaration {
	if grammar == Fish {
		return parseFishLine(raw)
	}
	return parsePosixLine(raw)
}

// parsePosixLine matches `export NAME=VALUE` with optional leading
// whitespace and optional single or double quoting of the value. Plain
// assignments without the export keyword are not declarations for our
// purposes: they do not reach child processes.
func parsePosixLine(raw string) *Declaration {
	rest, ok := cutKeyword(raw, "export")
	if !ok {
		return nil
	}

	eq := strings.IndexByte(rest, '=')
	if eq <= 0 {
		return nil
	}
	name := rest[:eq]
	if !validName(name) {
		return nil
	}

	value, ok := unquote(rest[eq+1:])
	if !ok {
		return nil
	}
	return &Declaration{Name: name, Value: value, Grammar: POSIX}
}

// parseFishLine matches `set --export NAME VALUE` and its short-flag
// spellings (-x, -gx, --global --export, and so on). A multi-token value is
// a fish list; exported lists cross the environment boundary colon-joined,
// so that is how we read them.
func parseFishLine(raw string) *Declaration {
	rest, ok := cutKeyword(raw, "set")
	if !ok {
		return nil
	}

	fields := strings.Fields(rest)
	exported := false
	name := ""
	var values []string
	for _, f := range fields {
		if name == "" && strings.HasPrefix(f, "-") {
			if isFishExportFlag(f) {
				exported = true
			}
			continue
		}
		if name == "" {
			name = f
			continue
		}
		v, ok := unquote(f)
		if !ok {
			return nil
		}
		values = append(values, v)
	}
	if !exported || !validName(name) || len(values) == 0 {
		return nil
	}
	return &Declaration{Name: name, Value: strings.Join(values, ":"), Grammar: Fish}
}

// cutKeyword strips leading whitespace and the given keyword followed by at
// least one space or tab.
func cutKeyword(raw, keyword string) (string, bool) {
	s := strings.TrimLeft(raw, " \t")
	if !strings.HasPrefix(s, keyword) {
		return "", false
	}
	s = s[len(keyword):]
	if s == "" || (s[0] != ' ' && s[0] != '\t') {
		return "", false
	}
	return strings.TrimLeft(s, " \t"), true
}

func isFishExportFlag(flag string) bool {
	switch flag {
	case "--export", "-x":
		return true
	}
	// Combined short flags such as -gx or -Ux.
	if strings.HasPrefix(flag, "-") && !strings.HasPrefix(flag, "--") {
		return strings.ContainsRune(flag[1:], 'x')
	}
	return false
}

// validName reports whether s is a well-formed variable name. The check is
// duplicated from the name validator to keep this package free of internal
// imports.
func validName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// unquote strips one pair of matching outer quotes. Unquoted text is
// returned as-is. A dangling quote fails the parse rather than guessing.
func unquote(s string) (string, bool) {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1], true
		}
	}
	if strings.HasPrefix(s, `"`) || strings.HasPrefix(s, `'`) {
		return "", false
	}
	return s, true
}

// renderDeclaration emits a declaration line in its grammar. Values are
// always double-quoted. Because values are read without unescaping they are
// written back without escaping, so dollar references like $PATH survive a
// rewrite; only embedded double quotes are escaped to keep the line
// syntactically sound.
func renderDeclaration(decl Declaration) string {
	quoted := `"` + strings.ReplaceAll(decl.Value, `"`, `\"`) + `"`
	if decl.Grammar == Fish {
		return "set --export " + decl.Name + " " + quoted
	}
	return "export " + decl.Name + "=" + quoted
}
