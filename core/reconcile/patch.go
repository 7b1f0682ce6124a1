package reconcile

import "strings"

// Substitution records how many occurrences of a pair were rewritten.
type Substitution struct {
	Pair
	Count int `json:"count"`
}

// ApplyMapping rewrites every token-exact occurrence of each old identifier with its
// new identifier, across the whole document, in mapping order.
//
// An occurrence only matches when its neighbors are not identifier characters
// (letters, digits, '_' or '-'), so mapping B1 leaves XB1Y untouched while
// rewriting 'B1'. All other bytes are preserved.
func ApplyMapping(doc Document, mapping Mapping) (Document, []Substitution) {
	text := string(doc)
	subs := make([]Substitution, 0, len(mapping))

	for _, p := range mapping {
		var n int
		text, n = replaceToken(text, p.Old, p.New)
		subs = append(subs, Substitution{Pair: p, Count: n})
	}

	return Document(text), subs
}

// CountOccurrences returns how many token-exact occurrences of id exist in doc.
func CountOccurrences(doc Document, id string) int {
	n := 0
	forEachToken(string(doc), id, func(int) { n++ })
	return n
}

// ReplaceBlock replaces the block located by target with replacement.
//
// If the block is not found, the input document is returned unchanged together with
// the *MissingBlockError; the condition is meant to be reported, not to abort.
func ReplaceBlock(doc Document, target Markers, replacement string) (Document, error) {
	block, err := LocateBlock(doc, target)
	if err != nil {
		return doc, err
	}

	text := string(doc)
	var b strings.Builder
	b.Grow(len(text) - (block.End - block.Start) + len(replacement))
	b.WriteString(text[:block.Start])
	b.WriteString(replacement)
	b.WriteString(text[block.End:])
	return Document(b.String()), nil
}

func replaceToken(text, old, repl string) (string, int) {
	if old == "" {
		return text, 0
	}

	var (
		b    strings.Builder
		last int
		n    int
	)
	forEachToken(text, old, func(at int) {
		if n == 0 {
			b.Grow(len(text))
		}
		b.WriteString(text[last:at])
		b.WriteString(repl)
		last = at + len(old)
		n++
	})
	if n == 0 {
		return text, 0
	}
	b.WriteString(text[last:])
	return b.String(), n
}

// forEachToken calls fn with the offset of every bounded occurrence of id.
func forEachToken(text, id string, fn func(at int)) {
	if id == "" {
		return
	}
	for from := 0; from <= len(text)-len(id); {
		i := strings.Index(text[from:], id)
		if i < 0 {
			return
		}
		at := from + i
		end := at + len(id)
		if (at == 0 || !isTokenByte(text[at-1])) && (end == len(text) || !isTokenByte(text[end])) {
			fn(at)
			from = end
			continue
		}
		from = at + 1
	}
}

func isTokenByte(c byte) bool {
	return c == '_' || c == '-' ||
		('0' <= c && c <= '9') ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z')
}
