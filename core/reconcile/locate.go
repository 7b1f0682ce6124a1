package reconcile

import "unicode/utf8"

// LocateBlock returns the span from the first match of m.Start through the first
// subsequent match of m.End, inclusive.
//
// End matches inside a single-quoted SQL literal or a "--" line comment are ignored,
// so content such as 'see (note);' does not close the block early.
// A missing marker yields a *MissingBlockError; the caller may fall back to a default block.
func LocateBlock(doc Document, m Markers) (Block, error) {
	text := string(doc)

	loc := m.Start.FindStringIndex(text)
	if loc == nil {
		return Block{}, &MissingBlockError{Label: m.Label, Marker: "start"}
	}

	lex := &quoteState{text: text, pos: loc[0]}
	from := loc[1]
	for from <= len(text) {
		rel := m.End.FindStringIndex(text[from:])
		if rel == nil {
			break
		}
		endStart, endStop := from+rel[0], from+rel[1]

		if lex.plainAt(endStart) {
			return Block{
				Label: m.Label,
				Start: loc[0],
				End:   endStop,
				Text:  text[loc[0]:endStop],
			}, nil
		}

		// Skip past this candidate; empty matches advance by one rune.
		if endStop > endStart {
			from = endStop
		} else {
			_, size := utf8.DecodeRuneInString(text[endStart:])
			from = endStart + max(size, 1)
		}
	}

	return Block{}, &MissingBlockError{Label: m.Label, Marker: "end"}
}

// quoteState tracks whether a position lies in plain SQL text, a quoted literal,
// or a line comment. It only moves forward.
type quoteState struct {
	text      string
	pos       int
	inQuote   bool
	inComment bool
}

// plainAt reports whether offset is outside any literal or comment.
func (q *quoteState) plainAt(offset int) bool {
	for q.pos < offset && q.pos < len(q.text) {
		c := q.text[q.pos]
		switch {
		case q.inComment:
			if c == '\n' {
				q.inComment = false
			}
		case q.inQuote:
			// A doubled quote toggles twice, which keeps the literal open.
			if c == '\'' {
				q.inQuote = false
			}
		case c == '\'':
			q.inQuote = true
		case c == '-' && q.pos+1 < len(q.text) && q.text[q.pos+1] == '-':
			q.inComment = true
			q.pos++
		}
		q.pos++
	}
	return !q.inQuote && !q.inComment
}
