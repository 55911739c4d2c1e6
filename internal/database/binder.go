package database

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
)

// Marker starts a parameter name in query text, e.g. @ComputerID.
const Marker = '@'

// ErrParameterCount is returned when the number of markers in a query
// differs from the number of supplied values.
var ErrParameterCount = errors.New("parameter count does not match query markers")

// BoundQuery is a query whose markers were rewritten to pgx positional
// placeholders ($1, $2, ...), ready to be sent with Args.
type BoundQuery struct {
	SQL     string
	Markers []string
	Args    []any
}

type markerSpan struct {
	name       string
	start, end int
}

// Bind binds args to the markers of query by position: the Nth marker,
// counted left to right, receives the Nth value and is rewritten to $N.
//
// A marker is Marker followed by an identifier. Markers may touch
// punctuation ("(@A,@B)") and several may share one whitespace-separated
// token, and names may hold any Unicode letter. Text inside quoted
// literals and identifiers (including E'...' escapes and $tag$ bodies)
// and inside comments is never scanned. A Marker not followed by an
// identifier (the Postgres @> operator) is left alone.
//
// Queries without markers are passed through with args untouched, so
// native $N queries keep working. A single pgx.NamedArgs value is also
// passed through and bound by name by pgx itself.
func Bind(query string, args []any) (BoundQuery, error) {
	if len(args) == 1 {
		if named, ok := args[0].(pgx.NamedArgs); ok {
			return BoundQuery{SQL: query, Args: []any{named}}, nil
		}
	}

	spans := scanMarkers(query)
	if len(spans) == 0 {
		return BoundQuery{SQL: query, Args: args}, nil
	}

	if len(spans) != len(args) {
		return BoundQuery{}, fmt.Errorf("%w: %d markers, %d values", ErrParameterCount, len(spans), len(args))
	}

	var b strings.Builder
	b.Grow(len(query))

	markers := make([]string, 0, len(spans))
	last := 0
	for i, span := range spans {
		b.WriteString(query[last:span.start])
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(i + 1))
		last = span.end
		markers = append(markers, span.name)
	}
	b.WriteString(query[last:])

	return BoundQuery{SQL: b.String(), Markers: markers, Args: args}, nil
}

// Markers lists the marker names of query in binding order, including
// the leading Marker character.
func Markers(query string) []string {
	spans := scanMarkers(query)
	names := make([]string, len(spans))
	for i, span := range spans {
		names[i] = span.name
	}
	return names
}

func scanMarkers(query string) []markerSpan {
	var spans []markerSpan

	n := len(query)
	for i := 0; i < n; i++ {
		switch c := query[i]; {
		case (c == 'E' || c == 'e') && i+1 < n && query[i+1] == '\'' && !identBefore(query, i):
			i = skipEscaped(query, i+1)

		case c == '\'' || c == '"':
			i = skipQuoted(query, i, c)

		case c == '$' && !identBefore(query, i):
			if end, ok := skipDollarQuoted(query, i); ok {
				i = end
			}

		case c == '-' && i+1 < n && query[i+1] == '-':
			if nl := strings.IndexByte(query[i:], '\n'); nl >= 0 {
				i += nl
			} else {
				i = n
			}

		case c == '/' && i+1 < n && query[i+1] == '*':
			if end := strings.Index(query[i+2:], "*/"); end >= 0 {
				i += end + 3
			} else {
				i = n
			}

		case c == Marker && (i == 0 || query[i-1] != Marker):
			r, size := utf8.DecodeRuneInString(query[i+1:])
			if size == 0 || !isIdentStart(r) {
				continue
			}
			end := i + 1 + size
			for end < n {
				r, size = utf8.DecodeRuneInString(query[end:])
				if !isIdentPart(r) {
					break
				}
				end += size
			}
			spans = append(spans, markerSpan{name: query[i:end], start: i, end: end})
			i = end - 1
		}
	}

	return spans
}

// skipQuoted returns the index of the closing quote of the literal that
// opens at start. A doubled quote is an escaped quote.
func skipQuoted(query string, start int, quote byte) int {
	for i := start + 1; i < len(query); i++ {
		if query[i] != quote {
			continue
		}
		if i+1 < len(query) && query[i+1] == quote {
			i++
			continue
		}
		return i
	}
	return len(query)
}

// skipEscaped is skipQuoted for E'...' strings, where a backslash also
// escapes the next byte.
func skipEscaped(query string, start int) int {
	for i := start + 1; i < len(query); i++ {
		switch query[i] {
		case '\\':
			i++
		case '\'':
			if i+1 < len(query) && query[i+1] == '\'' {
				i++
				continue
			}
			return i
		}
	}
	return len(query)
}

// skipDollarQuoted returns the index of the last byte of the $tag$...$tag$
// body opening at start. ok is false when start does not open a dollar
// quote, as in the positional placeholder $1.
func skipDollarQuoted(query string, start int) (end int, ok bool) {
	i := start + 1
	for i < len(query) && query[i] != '$' {
		r, size := utf8.DecodeRuneInString(query[i:])
		if (i == start+1 && !isIdentStart(r)) || !isIdentPart(r) {
			return 0, false
		}
		i += size
	}
	if i >= len(query) {
		return 0, false
	}

	tag := query[start : i+1]
	body := i + 1
	if closing := strings.Index(query[body:], tag); closing >= 0 {
		return body + closing + len(tag) - 1, true
	}
	return len(query), true
}

// identBefore reports whether the byte before i continues an identifier,
// so that E in "TYPE'x'" or $ in "a$b" is not read as a literal prefix.
func identBefore(query string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(query[:i])
	return isIdentPart(r) || r == '$'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
