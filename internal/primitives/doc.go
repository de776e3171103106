// Package primitives provides the small data structures the engine is built
// on: an insertion-ordered map with an explicit contains-key query, decoded
// from YAML in document order.
//
// Go maps have no stable iteration order, while state and event enumeration
// must follow declaration order. OrderedMap wraps go-ordered-map to carry that
// order and has no inherited or default keys: a key is present only if it
// was Set.
package primitives
