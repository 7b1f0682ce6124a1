package reconcile

import (
	"iter"
	"strings"
)

// Identifiers yields field column of every record tuple in text, in textual order.
//
// Tuples too short to have the column are skipped. Values are returned verbatim;
// the extractor does not check that they are well-formed identifiers.
func Identifiers(text string, column int) iter.Seq[string] {
	return func(yield func(string) bool) {
		for t := range Tuples(text) {
			if column < 0 || column >= len(t) {
				continue
			}
			if !yield(t[column]) {
				return
			}
		}
	}
}

// Tuples yields the record tuples of an insert block in textual order.
//
// A tuple is a parenthesized group at nesting depth zero whose first field is a
// single-quoted literal. Other groups (the column list, malformed rows) are skipped.
// Quotes and "--" line comments are honored, inside tuples and between them.
func Tuples(text string) iter.Seq[Tuple] {
	return func(yield func(Tuple) bool) {
		s := &tupleScanner{text: text}
		for {
			t, ok := s.next()
			if !ok {
				return
			}
			if t == nil {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

type tupleScanner struct {
	text string
	pos  int
}

// next returns the next tuple. A nil tuple with ok=true means a group was skipped.
func (s *tupleScanner) next() (Tuple, bool) {
	for s.pos < len(s.text) {
		c := s.text[s.pos]
		switch {
		case c == '\'':
			s.skipLiteral()
		case c == '-' && s.peek() == '-':
			s.skipLine()
		case c == '(':
			s.pos++
			return s.readTuple()
		default:
			s.pos++
		}
	}
	return nil, false
}

func (s *tupleScanner) peek() byte {
	if s.pos+1 < len(s.text) {
		return s.text[s.pos+1]
	}
	return 0
}

func (s *tupleScanner) skipLine() {
	for s.pos < len(s.text) && s.text[s.pos] != '\n' {
		s.pos++
	}
}

// skipLiteral moves past a quoted literal starting at s.pos.
func (s *tupleScanner) skipLiteral() {
	_ = s.readLiteral()
}

// readLiteral reads a single-quoted literal with doubled-quote escapes.
// s.pos must be on the opening quote.
func (s *tupleScanner) readLiteral() string {
	s.pos++ // opening quote

	var b strings.Builder
	for s.pos < len(s.text) {
		c := s.text[s.pos]
		if c == '\'' {
			if s.peek() == '\'' {
				b.WriteByte('\'')
				s.pos += 2
				continue
			}
			s.pos++ // closing quote
			return b.String()
		}
		b.WriteByte(c)
		s.pos++
	}
	return b.String()
}

// readTuple parses fields after an opening parenthesis. Line comments inside the
// tuple are dropped from field text.
func (s *tupleScanner) readTuple() (Tuple, bool) {
	var (
		fields     Tuple
		raw        strings.Builder
		wellFormed bool
		depth      = 0
		literals   = 0
		literal    string
	)

	finish := func() {
		text := strings.TrimSpace(raw.String())
		if fields == nil {
			wellFormed = text != "" && text[0] == '\''
		}
		if literals == 1 && len(text) >= 2 && text[0] == '\'' && text[len(text)-1] == '\'' {
			fields = append(fields, literal)
		} else {
			fields = append(fields, text)
		}
		raw.Reset()
		literals = 0
		literal = ""
	}

	for s.pos < len(s.text) {
		c := s.text[s.pos]
		switch {
		case c == '\'':
			from := s.pos
			literal = s.readLiteral()
			literals++
			raw.WriteString(s.text[from:s.pos])
			continue
		case c == '-' && s.peek() == '-':
			s.skipLine()
			continue
		case c == '(':
			depth++
		case c == ')' && depth > 0:
			depth--
		case c == ')':
			finish()
			s.pos++
			// The first field must open with a quote.
			if !wellFormed {
				return nil, true
			}
			return fields, true
		case c == ',' && depth == 0:
			finish()
			s.pos++
			continue
		}
		raw.WriteByte(c)
		s.pos++
	}

	// Unterminated tuple at end of text.
	return nil, false
}
