package predicate

import "github.com/nodefleet/funtonic/internal/registry"

// evalNode dispatches matching by the tag node's runtime shape: a leaf
// string, an ordered list, or a nested map. nil (an absent field) never
// matches at all, not even a wildcard, since there is nothing there to
// match against.
func evalNode(node registry.TagNode, q query) matchResult {
	switch n := node.(type) {
	case registry.TagValue:
		return evalValue(string(n), q)
	case registry.TagList:
		return evalList(n, q)
	case registry.TagMap:
		return evalMap(map[string]registry.TagNode(n), q)
	default:
		return resultNoMatch
	}
}

// evalValue implements leaf matching: a pattern matches only on exact
// string equality; a field query never matches a leaf (there is nothing to
// recurse into); wildcard always matches.
func evalValue(s string, q query) matchResult {
	switch v := q.(type) {
	case patternQuery:
		return fromBool(string(v) == s)
	case fieldQuery:
		return resultNoMatch
	case wildcardQuery:
		return resultMatch
	case andQuery:
		return and(evalValue(s, v.left), evalValue(s, v.right))
	case orQuery:
		return or(evalValue(s, v.left), evalValue(s, v.right))
	case notQuery:
		return not(evalValue(s, v.operand))
	default:
		return resultNoMatch
	}
}

// evalMap implements map matching: a bare pattern never matches a map (it
// has no single value to compare against); field:sub recurses into the
// named key, or is a non-match if the key is absent; wildcard always
// matches; and/or/not recurse directly on this same map.
func evalMap(m map[string]registry.TagNode, q query) matchResult {
	switch v := q.(type) {
	case patternQuery:
		return resultNoMatch
	case fieldQuery:
		child, ok := m[v.field]
		if !ok {
			return resultNoMatch
		}
		return evalNode(child, v.sub)
	case wildcardQuery:
		return resultMatch
	case andQuery:
		return and(evalMap(m, v.left), evalMap(m, v.right))
	case orQuery:
		return or(evalMap(m, v.left), evalMap(m, v.right))
	case notQuery:
		return not(evalMap(m, v.operand))
	default:
		return resultNoMatch
	}
}

// evalList implements list matching, which differs from map matching in
// two ways: a bare pattern or field:sub matches if any element matches it,
// and "and" folds each clause over the elements with the xor-poisoning
// fold so a rejecting element can veto the list's claim to the clause even
// when another element would otherwise satisfy it.
func evalList(items []registry.TagNode, q query) matchResult {
	switch v := q.(type) {
	case patternQuery, fieldQuery:
		acc := resultNoMatch
		for _, item := range items {
			acc = or(acc, evalNode(item, q))
		}
		return acc
	case wildcardQuery:
		return resultMatch
	case andQuery:
		return and(foldItemsXor(items, v.left), foldItemsXor(items, v.right))
	case orQuery:
		return or(foldItemsOr(items, v.left), foldItemsOr(items, v.right))
	case notQuery:
		// Every element must individually satisfy the negated clause for
		// the list as a whole to satisfy it — passing q (not v.operand)
		// back through evalNode lets this recurse correctly into
		// elements that are themselves lists or maps.
		acc := resultMatch
		for _, item := range items {
			acc = and(acc, evalNode(item, q))
		}
		return acc
	default:
		return resultNoMatch
	}
}

func foldItemsOr(items []registry.TagNode, clause query) matchResult {
	acc := resultNoMatch
	for _, item := range items {
		acc = or(acc, evalNode(item, clause))
	}
	return acc
}

func foldItemsXor(items []registry.TagNode, clause query) matchResult {
	acc := resultNoMatch
	for _, item := range items {
		acc = xor(acc, evalNode(item, clause))
	}
	return acc
}

// Match parses expr and evaluates it against tags, reporting whether the
// predicate selects an executor carrying those tags (spec.md section 4.4).
// A resultRejected outcome — produced by a negated clause whose operand
// matched, at the top level or nested under a list — counts as a non-match
// here, same as plain non-match.
func Match(expr string, tags registry.TagTree) (bool, error) {
	q, err := parse(expr)
	if err != nil {
		return false, err
	}
	return evalMap(map[string]registry.TagNode(tags), q).matches(), nil
}
