package predicate

import (
	"testing"

	"github.com/nodefleet/funtonic/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchWildcard(t *testing.T) {
	ok, err := Match("*", registry.TagTree{"role": registry.TagValue("db")})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Match("*", registry.TagTree{})
	require.NoError(t, err)
	assert.True(t, ok, "wildcard matches even an empty tag tree")
}

func TestMatchFieldPatternExact(t *testing.T) {
	tags := registry.TagTree{"role": registry.TagValue("db")}

	ok, err := Match("role:db", tags)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Match("role:web", tags)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatchBarePatternAgainstMapIsNoMatch(t *testing.T) {
	tags := registry.TagTree{"role": registry.TagValue("db")}

	ok, err := Match("db", tags)
	require.NoError(t, err)
	assert.False(t, ok, "a bare pattern never matches a map-shaped tag tree directly")
}

func TestMatchNestedFieldPattern(t *testing.T) {
	tags := registry.TagTree{
		"env": registry.TagMap{
			"region": registry.TagValue("eu-west-1"),
		},
	}

	ok, err := Match("env:region:eu-west-1", tags)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Match("env:region:us-east-1", tags)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatchListBarePatternMatchesAnyElement(t *testing.T) {
	tags := registry.TagTree{
		"groups": registry.TagList{registry.TagValue("foo"), registry.TagValue("bar"), registry.TagValue("prod")},
	}

	ok, err := Match("groups:prod", tags)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Match("groups:staging", tags)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatchMapDoesNotMatchBareValueOrWrongKey(t *testing.T) {
	tags := registry.TagTree{
		"meta": registry.TagMap{
			"key1": registry.TagValue("value1"),
		},
	}

	ok, err := Match("meta:value1", tags)
	require.NoError(t, err)
	assert.False(t, ok, "a map does not match a bare value the way a list does")

	ok, err = Match("meta:key1:value2", tags)
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestMatchFieldSubqueryConsumesWholeRemainder pins down a real property of
// the grammar: a field's subquery is parsed with the full recursive query
// parser, so "groups:foo and bar" means "the list behind 'groups' contains
// both foo and bar" (a single field whose subquery is "foo and bar") rather
// than a top-level and across two different fields.
func TestMatchFieldSubqueryConsumesWholeRemainder(t *testing.T) {
	tags := registry.TagTree{
		"groups": registry.TagList{registry.TagValue("foo"), registry.TagValue("bar")},
	}

	ok, err := Match("groups:foo and bar", tags)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Match("groups:foo and baz", tags)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatchBareAndOrOverList(t *testing.T) {
	tags := registry.TagTree{
		"groups": registry.TagList{registry.TagValue("foo"), registry.TagValue("bar")},
	}

	ok, err := Match("groups:foo or baz", tags)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Match("groups:baz or qux", tags)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatchCommaIsOrSynonym(t *testing.T) {
	tags := registry.TagTree{
		"groups": registry.TagList{registry.TagValue("foo")},
	}

	ok, err := Match("groups:bar, foo", tags)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMatchNotSimple(t *testing.T) {
	tags := registry.TagTree{"role": registry.TagValue("db")}

	ok, err := Match("not role:web", tags)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Match("!role:db", tags)
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestMatchNotOverListVetoesAndClause is grounded on the original matcher's
// use of xor (not plain or) when folding an "and" clause over a list's
// elements: one element satisfying the negated half rejects the whole
// clause for the list, even though the same list also has an element
// satisfying the positive half.
func TestMatchNotOverListVetoesAndClause(t *testing.T) {
	tags := registry.TagTree{
		"groups": registry.TagList{registry.TagValue("foo"), registry.TagValue("bar"), registry.TagValue("prod")},
	}

	ok, err := Match("groups:prod and not prod", tags)
	require.NoError(t, err)
	assert.False(t, ok, "the 'prod' element rejects the not-clause, vetoing the and even though prod is present")
}

func TestMatchNotOverListRequiresEveryElementToSatisfy(t *testing.T) {
	tags := registry.TagTree{
		"groups": registry.TagList{registry.TagValue("foo"), registry.TagValue("bar")},
	}

	ok, err := Match("groups:not prod", tags)
	require.NoError(t, err)
	assert.True(t, ok, "no element is 'prod', so every element satisfies the negation")

	ok, err = Match("groups:not foo", tags)
	require.NoError(t, err)
	assert.False(t, ok, "the 'foo' element does not satisfy the negation")
}

func TestMatchAbsentFieldIsNoMatch(t *testing.T) {
	tags := registry.TagTree{"role": registry.TagValue("db")}

	ok, err := Match("missing:anything", tags)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	_, err := Match("role:db and", registry.TagTree{})
	assert.Error(t, err)
}

func TestParseRejectsEmptyInput(t *testing.T) {
	_, err := Match("", registry.TagTree{})
	assert.Error(t, err)
}

func TestParseFieldChain(t *testing.T) {
	q, err := parse("field:sub_field:pattern")
	require.NoError(t, err)
	outer, ok := q.(fieldQuery)
	require.True(t, ok)
	assert.Equal(t, "field", outer.field)
	inner, ok := outer.sub.(fieldQuery)
	require.True(t, ok)
	assert.Equal(t, "sub_field", inner.field)
	assert.Equal(t, patternQuery("pattern"), inner.sub)
}

func TestParseTwoLevelAndIsRightAssociative(t *testing.T) {
	q, err := parse("foo and bar and yak")
	require.NoError(t, err)
	top, ok := q.(andQuery)
	require.True(t, ok)
	assert.Equal(t, patternQuery("foo"), top.left)
	nested, ok := top.right.(andQuery)
	require.True(t, ok)
	assert.Equal(t, patternQuery("bar"), nested.left)
	assert.Equal(t, patternQuery("yak"), nested.right)
}
