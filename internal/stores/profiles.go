package stores

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/thgossler/menv/internal/backup"
	"github.com/thgossler/menv/internal/config"
	"github.com/thgossler/menv/internal/fsutil"
	"github.com/thgossler/menv/internal/profile"
)

// ProfileStore reads and edits shell startup files. Reads probe every
// candidate file in priority order; the first declaration of a name wins,
// matching which declaration a new shell would apply last. Writes go to a
// single configured target file so managed declarations do not scatter.
//
// Edits replace or remove individual declaration lines. Unrelated lines,
// comments, and user formatting are preserved byte for byte.
type ProfileStore struct {
	fs      fsutil.FS
	backups *backup.Manager
	home    string
	target  string
	log     zerolog.Logger
}

// Declaration is a variable declaration located in a specific profile file.
type Declaration struct {
	File    string
	Line    int
	Name    string
	Value   string
	Grammar profile.Grammar
}

// Edit is one declaration-line change in a profile rewrite. A nil NewValue
// drops the line.
type Edit struct {
	Line     int
	NewValue *string
}

// NewProfileStore returns a store probing the standard profile files under
// home and writing new declarations to target, which may start with ~.
// backups may be nil to disable snapshots.
func NewProfileStore(fs fsutil.FS, backups *backup.Manager, home, target string, log zerolog.Logger) *ProfileStore {
	return &ProfileStore{
		fs:      fs,
		backups: backups,
		home:    home,
		target:  fsutil.ExpandHome(target, home),
		log:     log,
	}
}

// Target returns the expanded path new declarations are written to.
func (s *ProfileStore) Target() string { return s.target }

// Kind identifies the store.
func (s *ProfileStore) Kind() SourceKind { return KindShellProfile }

type profileFile struct {
	path    string
	grammar profile.Grammar
}

// files returns the probe order: POSIX candidates first, the fish config
// last because its grammar differs and fewer tools manage it. The write
// target is probed even when it is not a standard candidate.
func (s *ProfileStore) files() []profileFile {
	var list []profileFile
	seen := make(map[string]bool)
	for _, path := range config.ProfileCandidates(s.home) {
		list = append(list, profileFile{path: path, grammar: profile.POSIX})
		seen[path] = true
	}
	if !seen[s.target] {
		list = append(list, profileFile{path: s.target, grammar: profile.POSIX})
	}
	list = append(list, profileFile{path: config.FishConfig(s.home), grammar: profile.Fish})
	return list
}

// load parses one profile file. A missing file is an empty document.
func (s *ProfileStore) load(f profileFile) (*profile.Document, error) {
	data, err := s.fs.ReadFile(f.path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	return profile.Parse(f.path, data, f.grammar), nil
}

// Exists checks if any profile file declares name.
func (s *ProfileStore) Exists(ctx context.Context, name string) (bool, error) {
	_, found, err := s.Read(ctx, name)
	return found, err
}

// Read returns the winning declaration's value for name. Files that cannot
// be read are skipped with a debug log so one unreadable rc file does not
// hide declarations in the others.
func (s *ProfileStore) Read(_ context.Context, name string) (string, bool, error) {
	for _, f := range s.files() {
		doc, err := s.load(f)
		if err != nil {
			s.log.Debug().Str("file", f.path).Err(err).Msg("skipping unreadable profile")
			continue
		}
		if value, found := doc.Value(name); found {
			return value, true, nil
		}
	}
	return "", false, nil
}

// Write sets name in the target file. Existing declarations of the name
// there are rewritten in place, all of them, so a later line cannot shadow
// the new value; otherwise a declaration is appended.
func (s *ProfileStore) Write(_ context.Context, name, value string) error {
	f := s.targetFile()
	doc, err := s.load(f)
	if err != nil {
		return err
	}

	if indexes := doc.Declarations(name); len(indexes) > 0 {
		for _, idx := range indexes {
			doc.SetValueAt(idx, value)
		}
	} else {
		doc.AppendExport(name, value)
	}
	return s.save(doc)
}

// Remove drops every declaration of name from every profile file.
func (s *ProfileStore) Remove(_ context.Context, name string) error {
	for _, f := range s.files() {
		doc, err := s.load(f)
		if err != nil {
			return err
		}
		indexes := doc.Declarations(name)
		if len(indexes) == 0 {
			continue
		}
		doc.RemoveAt(indexes...)
		if err := s.save(doc); err != nil {
			return err
		}
	}
	return nil
}

// Names enumerates declared names across all files in probe order.
func (s *ProfileStore) Names(_ context.Context) ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	for _, f := range s.files() {
		doc, err := s.load(f)
		if err != nil {
			s.log.Debug().Str("file", f.path).Err(err).Msg("skipping unreadable profile")
			continue
		}
		for _, name := range doc.Names() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names, nil
}

// Declarations locates every declaration of name across all profile files,
// in probe order. The first entry is the winning declaration.
func (s *ProfileStore) Declarations(_ context.Context, name string) ([]Declaration, error) {
	var decls []Declaration
	for _, f := range s.files() {
		doc, err := s.load(f)
		if err != nil {
			s.log.Debug().Str("file", f.path).Err(err).Msg("skipping unreadable profile")
			continue
		}
		for _, idx := range doc.Declarations(name) {
			decl := doc.Lines[idx].Decl
			decls = append(decls, Declaration{
				File:    f.path,
				Line:    idx,
				Name:    decl.Name,
				Value:   decl.Value,
				Grammar: decl.Grammar,
			})
		}
	}
	return decls, nil
}

// Rewrite applies per-line edits to one profile file: a single backup, then
// a single atomic write. Line numbers refer to the file as returned by
// Declarations.
func (s *ProfileStore) Rewrite(_ context.Context, file string, edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}
	f := profileFile{path: file, grammar: s.grammarFor(file)}
	doc, err := s.load(f)
	if err != nil {
		return err
	}

	var drop []int
	for _, edit := range edits {
		if edit.NewValue == nil {
			drop = append(drop, edit.Line)
			continue
		}
		doc.SetValueAt(edit.Line, *edit.NewValue)
	}
	doc.RemoveAt(drop...)

	return s.save(doc)
}

func (s *ProfileStore) targetFile() profileFile {
	return profileFile{path: s.target, grammar: s.grammarFor(s.target)}
}

func (s *ProfileStore) grammarFor(path string) profile.Grammar {
	if path == config.FishConfig(s.home) {
		return profile.Fish
	}
	return profile.POSIX
}

func (s *ProfileStore) save(doc *profile.Document) error {
	if s.backups != nil {
		if _, err := s.backups.Create(doc.Path); err != nil {
			return fmt.Errorf("failed to back up %s: %w", doc.Path, err)
		}
	}
	if err := s.fs.AtomicWrite(doc.Path, doc.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", doc.Path, err)
	}
	return nil
}
