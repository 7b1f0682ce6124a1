package reconcile

import "fmt"

// PositionalRemap pairs placeholders[i] with canonical[i].
//
// When canonical is shorter than placeholders the excess placeholders map to
// themselves and are dropped as no-ops. Positional mapping assumes textual order
// equals insertion order; duplicate canonical identifiers break that assumption
// and yield ErrAmbiguousOrder instead of a silently wrong mapping. A placeholder
// listed twice would need two targets and yields ErrConflictingMapping.
//
// The pairs are substituted simultaneously, not one after another. A remap whose
// targets overlap its placeholders (P1 -> P2, P2 -> A2) is therefore not collapsed
// into P1 -> A2; Merge rejects it with ErrChainedMapping.
func PositionalRemap(placeholders, canonical []string) (Mapping, error) {
	slots := make(map[string]int, len(placeholders))
	for i, id := range placeholders {
		if prev, dup := slots[id]; dup {
			return nil, fmt.Errorf("%w: placeholder %q at positions %d and %d", ErrConflictingMapping, id, prev, i)
		}
		slots[id] = i
	}

	seen := make(map[string]int, len(canonical))
	for i, id := range canonical {
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %q at positions %d and %d", ErrAmbiguousOrder, id, prev, i)
		}
		seen[id] = i
	}

	mapping := make(Mapping, 0, len(placeholders))
	for i, old := range placeholders {
		newID := old
		if i < len(canonical) {
			newID = canonical[i]
		}
		if old == newID {
			continue
		}
		mapping = append(mapping, Pair{Old: old, New: newID, Source: ActionRemap})
	}
	return mapping, nil
}

// ReplacementTable turns a fixed list of known-bad to known-good pairs into a Mapping.
// Identity pairs are filtered out.
func ReplacementTable(entries []Pair) Mapping {
	mapping := make(Mapping, 0, len(entries))
	for _, e := range entries {
		if e.Old == e.New || e.Old == "" {
			continue
		}
		mapping = append(mapping, Pair{Old: e.Old, New: e.New, Source: ActionTable})
	}
	return mapping
}

// Merge concatenates mappings in order.
//
// Parts behave as if applied one after another: once an earlier part rewrites an
// identifier, later pairs for the same identifier have nothing left to match and are
// dropped. Within a single part, mapping one identifier to two targets returns
// ErrConflictingMapping. A target that is also a source returns ErrChainedMapping,
// since the second substitution would rewrite the output of the first.
func Merge(parts ...Mapping) (Mapping, error) {
	var merged Mapping
	targets := make(map[string]Pair)

	for n, part := range parts {
		owner := make(map[string]int)
		for _, p := range part {
			if p.Old == p.New {
				continue
			}
			if prev, ok := targets[p.Old]; ok {
				if owner[p.Old] == n+1 && prev.New != p.New {
					return nil, fmt.Errorf("%w: %q -> %q and %q (%s)",
						ErrConflictingMapping, p.Old, prev.New, p.New, p.Source)
				}
				continue
			}
			targets[p.Old] = p
			owner[p.Old] = n + 1
			merged = append(merged, p)
		}
	}

	for _, p := range merged {
		if next, ok := targets[p.New]; ok {
			return nil, fmt.Errorf("%w: %q -> %q -> %q", ErrChainedMapping, p.Old, p.New, next.New)
		}
	}

	return merged, nil
}
