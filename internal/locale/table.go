package locale

import "errors"

// ErrNotFound is returned when an id has no entry in the translation table.
// Lookup misses are non-fatal; callers degrade to a blank label.
var ErrNotFound = errors.New("id not found in translation table")

// Table resolves opaque feed ids to localized display names. It is built
// once at startup and read-only afterwards; consumers receive it by
// reference instead of going through a package global.
type Table struct {
	stages  map[string]string
	weapons map[string]string
}

// NewTable builds a table from id → name maps. The maps are copied so the
// table stays immutable even if the caller keeps the originals.
func NewTable(stages, weapons map[string]string) *Table {
	t := &Table{
		stages:  make(map[string]string, len(stages)),
		weapons: make(map[string]string, len(weapons)),
	}
	for id, name := range stages {
		t.stages[id] = name
	}
	for id, name := range weapons {
		t.weapons[id] = name
	}
	return t
}

// StageName resolves a stage id to its localized name.
func (t *Table) StageName(id string) (string, error) {
	name, ok := t.stages[id]
	if !ok {
		return "", ErrNotFound
	}
	return name, nil
}

// WeaponName resolves a weapon id to its localized name.
func (t *Table) WeaponName(id string) (string, error) {
	name, ok := t.weapons[id]
	if !ok {
		return "", ErrNotFound
	}
	return name, nil
}
