// Package mapping defines the symbol mapping table that drives an icon
// migration: which imported names are renamed, and which stay behind on
// the legacy module.
package mapping

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Sentinel validation errors.
var (
	ErrExcludedRename = errors.New("symbol is both renamed and excluded")
	ErrEmptyName      = errors.New("empty symbol name")
	ErrSelfRename     = errors.New("symbol renamed to itself")
)

// Table is an immutable set of rename rules plus the symbols that must
// stay on the legacy module. Loaded once per run and shared read-only
// across workers.
type Table struct {
	renames  map[string]string
	excluded map[string]struct{}
}

// New builds a Table from a rename map and an excluded list and validates
// the result. The inputs are copied; later mutation of the arguments does
// not affect the table.
func New(renames map[string]string, excluded []string) (*Table, error) {
	table := &Table{
		renames:  make(map[string]string, len(renames)),
		excluded: make(map[string]struct{}, len(excluded)),
	}

	for old, updated := range renames {
		table.renames[old] = updated
	}

	for _, name := range excluded {
		table.excluded[name] = struct{}{}
	}

	validateErr := table.validate()
	if validateErr != nil {
		return nil, validateErr
	}

	return table, nil
}

// Rename returns the replacement name for old and whether a rename rule
// exists. Symbols without a rule keep their name.
func (t *Table) Rename(old string) (string, bool) {
	updated, ok := t.renames[old]

	return updated, ok
}

// IsExcluded reports whether name must stay on the legacy module.
func (t *Table) IsExcluded(name string) bool {
	_, ok := t.excluded[name]

	return ok
}

// OldNames returns every rename key in sorted order. Used by the
// verification pass to scan for residual occurrences.
func (t *Table) OldNames() []string {
	names := make([]string, 0, len(t.renames))
	for old := range t.renames {
		names = append(names, old)
	}

	sort.Strings(names)

	return names
}

// Len returns the number of rename rules.
func (t *Table) Len() int {
	return len(t.renames)
}

func (t *Table) validate() error {
	for old, updated := range t.renames {
		if old == "" || updated == "" {
			return fmt.Errorf("%w: %q -> %q", ErrEmptyName, old, updated)
		}

		if old == updated {
			return fmt.Errorf("%w: %q", ErrSelfRename, old)
		}

		if _, isExcluded := t.excluded[old]; isExcluded {
			return fmt.Errorf("%w: %q", ErrExcludedRename, old)
		}
	}

	for name := range t.excluded {
		if name == "" {
			return fmt.Errorf("%w: excluded entry", ErrEmptyName)
		}
	}

	return nil
}

// tableFile is the on-disk YAML shape of a mapping table.
type tableFile struct {
	Renames  map[string]string `yaml:"renames"`
	Excluded []string          `yaml:"excluded"`
}

// Load reads a mapping table from a YAML file.
func Load(path string) (*Table, error) {
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, fmt.Errorf("failed to read mapping file: %w", readErr)
	}

	var file tableFile

	unmarshalErr := yaml.Unmarshal(data, &file)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse mapping file: %w", unmarshalErr)
	}

	table, newErr := New(file.Renames, file.Excluded)
	if newErr != nil {
		return nil, fmt.Errorf("invalid mapping file %s: %w", path, newErr)
	}

	return table, nil
}
