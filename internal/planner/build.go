package planner

import (
	"github.com/thgossler/menv/internal/pathlist"
	"github.com/thgossler/menv/internal/resolve"
	"github.com/thgossler/menv/internal/stores"
)

// BuildSet plans a variable assignment. The session environment and the
// login agent always get the value; a shell profile declaration is added
// only for scalar variables, because profile-declared PATH lists grow by a
// full duplicate of the list on every re-set.
func BuildSet(name, value string, pathLike bool) *Plan {
	plan := NewPlan(name)
	plan.Add(Operation{Type: OpSessionSet, Kind: stores.KindSession, Name: name, Value: value})
	plan.Add(Operation{Type: OpAgentBind, Kind: stores.KindLoginAgent, Name: name, Value: value})
	if !pathLike {
		plan.Add(Operation{Type: OpProfileSet, Kind: stores.KindShellProfile, Name: name, Value: value})
	}
	return plan
}

// BuildDelete plans the removal of a variable from every store that claims
// it. An inherited-only record produces an empty plan: there is nothing
// menv manages to remove.
func BuildDelete(record *resolve.Record) *Plan {
	plan := NewPlan(record.Name)
	for _, source := range record.Sources {
		switch source.Kind {
		case stores.KindSession:
			plan.Add(Operation{Type: OpSessionUnset, Kind: source.Kind, Name: record.Name})
		case stores.KindLoginAgent:
			plan.Add(Operation{Type: OpAgentRemove, Kind: source.Kind, Name: record.Name})
		case stores.KindShellProfile:
			plan.Add(Operation{Type: OpProfileRemove, Kind: source.Kind, Name: record.Name})
		case stores.KindLegacy:
			plan.Add(Operation{Type: OpLegacyRemove, Kind: source.Kind, Name: record.Name})
		}
	}
	return plan
}

// BuildEntryRemoval plans the removal of one list entry from every store
// and file that carries it. Value-bearing stores are rewritten with the
// entry dropped; a store whose list would become empty loses the binding
// instead. Profile files are edited line by line, and several declarations
// in one file collapse into a single rewrite of that file.
//
// The plan is empty when no store carries the entry.
func BuildEntryRemoval(record *resolve.Record, decls []stores.Declaration, entry string) *Plan {
	plan := NewPlan(record.Name)

	for _, source := range record.Sources {
		switch source.Kind {
		case stores.KindShellProfile, stores.KindInherited:
			// Profiles are handled per declaration below; the inherited
			// environment cannot be rewritten.
			continue
		}

		list := pathlist.Parse(source.Value)
		trimmed, removed := list.Remove(entry)
		if removed == 0 {
			continue
		}

		if len(trimmed) == 0 {
			switch source.Kind {
			case stores.KindSession:
				plan.Add(Operation{Type: OpSessionUnset, Kind: source.Kind, Name: record.Name})
			case stores.KindLoginAgent:
				plan.Add(Operation{Type: OpAgentRemove, Kind: source.Kind, Name: record.Name})
			case stores.KindLegacy:
				plan.Add(Operation{Type: OpLegacyRemove, Kind: source.Kind, Name: record.Name})
			}
			continue
		}

		value := trimmed.Join()
		switch source.Kind {
		case stores.KindSession:
			plan.Add(Operation{Type: OpSessionSet, Kind: source.Kind, Name: record.Name, Value: value})
		case stores.KindLoginAgent:
			plan.Add(Operation{Type: OpAgentBind, Kind: source.Kind, Name: record.Name, Value: value})
		case stores.KindLegacy:
			plan.Add(Operation{Type: OpLegacySet, Kind: source.Kind, Name: record.Name, Value: value})
		}
	}

	edits := make(map[string][]stores.Edit)
	var fileOrder []string
	for _, decl := range decls {
		list := pathlist.Parse(decl.Value)
		trimmed, removed := list.Remove(entry)
		if removed == 0 {
			continue
		}
		if _, seen := edits[decl.File]; !seen {
			fileOrder = append(fileOrder, decl.File)
		}
		if len(trimmed) == 0 {
			edits[decl.File] = append(edits[decl.File], stores.Edit{Line: decl.Line})
		} else {
			value := trimmed.Join()
			edits[decl.File] = append(edits[decl.File], stores.Edit{Line: decl.Line, NewValue: &value})
		}
	}
	for _, file := range fileOrder {
		plan.Add(Operation{
			Type:  OpProfileRewrite,
			Kind:  stores.KindShellProfile,
			Name:  record.Name,
			File:  file,
			Edits: edits[file],
		})
	}

	return plan
}
