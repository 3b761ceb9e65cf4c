package engine

import (
	"github.com/Sumatoshi-tech/iconshift/internal/mapping"
)

// Partition is the result of applying a mapping table to a specifier
// list: the specifiers that move to the replacement module (renamed where
// the table says so), the specifiers that stay behind, and the body
// substitutions the move implies.
type Partition struct {
	// Migratable holds the specifiers for the replacement-module
	// declaration, in source order, with Name already mapped.
	Migratable []Specifier

	// Excluded holds the specifiers that stay on the legacy module,
	// unchanged and in source order.
	Excluded []Specifier

	// Renames maps old local name to new local name for every specifier
	// whose visible name actually changed. Aliased specifiers never
	// appear here: their local name is the alias, which is untouched.
	Renames map[string]string
}

// PartitionSpecifiers applies table to specs. A specifier that is neither
// renamed nor excluded migrates under an identity mapping: the module
// moves, the name stays, and no body substitution is generated for it.
func PartitionSpecifiers(specs []Specifier, table *mapping.Table) Partition {
	part := Partition{Renames: make(map[string]string)}

	for _, spec := range specs {
		if table.IsExcluded(spec.Name) {
			part.Excluded = append(part.Excluded, spec)

			continue
		}

		mapped, renamed := table.Rename(spec.Name)
		if renamed {
			if spec.Alias == "" {
				part.Renames[spec.Name] = mapped
			}

			spec.Name = mapped
		}

		part.Migratable = append(part.Migratable, spec)
	}

	return part
}

// LocalNames returns the local name of every specifier in the partition,
// migratable first, in source order.
func (p Partition) LocalNames() []string {
	names := make([]string, 0, len(p.Migratable)+len(p.Excluded))

	for _, spec := range p.Migratable {
		names = append(names, spec.Local())
	}

	for _, spec := range p.Excluded {
		names = append(names, spec.Local())
	}

	return names
}
