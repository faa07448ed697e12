package pathlist

import "os"

// DirChecker reports whether a list entry names an existing directory.
// Injectable so analysis is testable without touching the real filesystem.
type DirChecker func(path string) bool

// OSDirChecker checks the real filesystem. Permission and stat errors fail
// open: the entry is reported as non-existing rather than aborting analysis.
func OSDirChecker(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Analysis is the composition summary of a PATH-like list. Duplicate
// statistics cover non-empty entries only; empty entries are counted
// separately in EmptyCount.
type Analysis struct {
	// TotalEntries counts every entry, empty ones included.
	TotalEntries int

	// UniqueEntries counts distinct non-empty entry texts.
	UniqueEntries int

	// DuplicateCount counts surplus occurrences beyond the first for each
	// repeated non-empty text.
	DuplicateCount int

	// EmptyCount counts empty entries (adjacent colons).
	EmptyCount int

	// ExistingDirCount counts non-empty entries naming an existing directory.
	ExistingDirCount int

	// DuplicateGroups maps each repeated text to the ordered 1-based
	// positions of all its occurrences.
	DuplicateGroups map[string][]int

	// Entries is the analyzed list with Exists and Occurrences populated.
	Entries List
}

// Analyze computes the composition summary of list. The existence check runs
// only for non-empty entries; isDir defaults to OSDirChecker when nil.
func Analyze(list List, isDir DirChecker) Analysis {
	if isDir == nil {
		isDir = OSDirChecker
	}

	occurrences := make(map[string]int, len(list))
	for _, e := range list {
		occurrences[e.Text]++
	}

	a := Analysis{
		TotalEntries:    len(list),
		DuplicateGroups: make(map[string][]int),
		Entries:         make(List, len(list)),
	}

	seen := make(map[string]bool, len(list))
	for i, e := range list {
		e.Occurrences = occurrences[e.Text]
		if e.Text == "" {
			a.EmptyCount++
			a.Entries[i] = e
			continue
		}
		e.Exists = isDir(e.Text)
		a.Entries[i] = e
		if e.Exists {
			a.ExistingDirCount++
		}

		if !seen[e.Text] {
			seen[e.Text] = true
			a.UniqueEntries++
			if occurrences[e.Text] > 1 {
				a.DuplicateGroups[e.Text] = list.Positions(e.Text)
				a.DuplicateCount += occurrences[e.Text] - 1
			}
		}
	}

	return a
}
