package predicate

import (
	"fmt"
	"strings"
)

// ParseError reports a predicate that could not be parsed, with the byte
// offset the parser gave up at.
type ParseError struct {
	Input  string
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("predicate: %s at offset %d in %q", e.Reason, e.Offset, e.Input)
}

// parse consumes the entire input string as one query. Leading and
// trailing whitespace is trimmed once up front; internal whitespace around
// operators follows the grammar's own rules below.
func parse(input string) (query, error) {
	trimmed := strings.TrimSpace(input)
	q, rest, err := parseQuery(trimmed)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, &ParseError{Input: input, Offset: len(trimmed) - len(rest), Reason: "unexpected trailing input"}
	}
	return q, nil
}

// parseQuery tries, in order: an "and" clause, an "or" clause, a "not"
// clause, then a bare simple term. Each of the first three parses a single
// operand up front and only commits if the expected separator follows;
// otherwise it backtracks to the next alternative untouched.
func parseQuery(s string) (query, string, error) {
	if q, rest, ok := tryAndClause(s); ok {
		return q, rest, nil
	}
	if q, rest, ok := tryOrClause(s); ok {
		return q, rest, nil
	}
	if q, rest, ok := tryNotClause(s); ok {
		return q, rest, nil
	}
	return parseSimple(s)
}

func tryAndClause(s string) (query, string, bool) {
	lhs, rest, err := parseSimple(s)
	if err != nil {
		return nil, s, false
	}
	rest, ok := consumeAndSeparator(rest)
	if !ok {
		return nil, s, false
	}
	rhs, rest, err := parseQuery(rest)
	if err != nil {
		return nil, s, false
	}
	return andQuery{left: lhs, right: rhs}, rest, true
}

func tryOrClause(s string) (query, string, bool) {
	lhs, rest, err := parseSimple(s)
	if err != nil {
		return nil, s, false
	}
	rest, ok := consumeOrSeparator(rest)
	if !ok {
		return nil, s, false
	}
	rhs, rest, err := parseQuery(rest)
	if err != nil {
		return nil, s, false
	}
	return orQuery{left: lhs, right: rhs}, rest, true
}

// tryNotClause binds "not"/"!" to a single simple term, not to the whole
// remaining query — so "not a and b" parses as (not a) with "and b" left
// over, exactly like the grammar it is grounded on.
func tryNotClause(s string) (query, string, bool) {
	rest, ok := consumeNotMarker(s)
	if !ok {
		return nil, s, false
	}
	operand, rest, err := parseSimple(rest)
	if err != nil {
		return nil, s, false
	}
	return notQuery{operand: operand}, rest, true
}

// parseSimple parses a wildcard, a field:subquery, or a bare pattern, in
// that order — field:subquery only commits once the ':' delimiter is seen
// immediately after the field name, so a bare pattern that happens to be a
// valid field name still falls through correctly when no ':' follows.
func parseSimple(s string) (query, string, error) {
	if strings.HasPrefix(s, "*") {
		return wildcardQuery{}, s[1:], nil
	}

	field, rest, ok := consumePattern(s)
	if !ok {
		return nil, s, &ParseError{Input: s, Offset: 0, Reason: "expected a pattern, '*', or field:subquery"}
	}

	if strings.HasPrefix(rest, ":") {
		sub, rest2, err := parseQuery(rest[1:])
		if err == nil {
			return fieldQuery{field: field, sub: sub}, rest2, nil
		}
	}

	return patternQuery(field), rest, nil
}

func isPatternByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_' || b == '@' || b == '#' || b == '.':
		return true
	default:
		return false
	}
}

func consumePattern(s string) (pattern string, rest string, ok bool) {
	i := 0
	for i < len(s) && isPatternByte(s[i]) {
		i++
	}
	if i == 0 {
		return "", s, false
	}
	return s[:i], s[i:], true
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func consumeSpaces0(s string) string {
	i := 0
	for i < len(s) && isSpaceByte(s[i]) {
		i++
	}
	return s[i:]
}

func consumeSpaces1(s string) (string, bool) {
	i := 0
	for i < len(s) && isSpaceByte(s[i]) {
		i++
	}
	if i == 0 {
		return s, false
	}
	return s[i:], true
}

func hasCIPrefix(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	return strings.EqualFold(s[:len(prefix)], prefix)
}

func consumeAndToken(s string) (string, bool) {
	if hasCIPrefix(s, "and") {
		return s[3:], true
	}
	if strings.HasPrefix(s, "&&") {
		return s[2:], true
	}
	return s, false
}

func consumeOrToken(s string) (string, bool) {
	if hasCIPrefix(s, "or") {
		return s[2:], true
	}
	if strings.HasPrefix(s, "||") {
		return s[2:], true
	}
	return s, false
}

// consumeAndSeparator requires whitespace, the "and"/"&&" token, then
// whitespace — the word and symbol forms are both spaced on both sides.
func consumeAndSeparator(s string) (string, bool) {
	rest, ok := consumeSpaces1(s)
	if !ok {
		return s, false
	}
	rest, ok = consumeAndToken(rest)
	if !ok {
		return s, false
	}
	rest, ok = consumeSpaces1(rest)
	if !ok {
		return s, false
	}
	return rest, true
}

// consumeOrSeparator accepts a spaced "or"/"||", or a comma with optional
// surrounding whitespace (comma needs no mandatory spacing either side).
func consumeOrSeparator(s string) (string, bool) {
	if rest, ok := consumeSpaces1(s); ok {
		if rest, ok := consumeOrToken(rest); ok {
			if rest, ok := consumeSpaces1(rest); ok {
				return rest, true
			}
		}
	}

	rest := consumeSpaces0(s)
	if strings.HasPrefix(rest, ",") {
		return consumeSpaces0(rest[1:]), true
	}
	return s, false
}

// consumeNotMarker accepts "not " (the trailing space is part of the
// literal token) or a bare "!" with no required space.
func consumeNotMarker(s string) (string, bool) {
	if hasCIPrefix(s, "not ") {
		return s[4:], true
	}
	if strings.HasPrefix(s, "!") {
		return s[1:], true
	}
	return s, false
}
