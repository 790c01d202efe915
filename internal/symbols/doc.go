// Package symbols provides the symbol environment the type checker reads.
//
// Name resolution owns the environment; the checker only asks
// DefinitionType(name, scope). Table is the in-tree implementation: an
// immutable tree of scopes built with Builder, optionally seeded from a
// query's own patterns with Collect.
package symbols
