// Package ast defines the abstract syntax tree the type checker consumes.
//
// Trees are built upstream (parser and name resolution stages, or the fixture
// loader) and are read-only to the checker. Nodes are identified by pointer:
// the checker's annotations and diagnostics are keyed by node identity.
//
// SEALED INTERFACES:
//
// Expr and PatternElement are sealed using the marker method pattern. Every
// expression kind implements Accept, which dispatches to the Visitor method
// for that kind. The Visitor interface lists one method per kind, so a new
// expression kind without a matching rule does not compile:
//
//	func (n *Not) Accept(v Visitor) types.Type { return v.VisitNot(n) }
//
// Clauses (SELECT, MATCH, ORDER BY, ...) are plain structs hanging off Query
// and are visited in a fixed order by the checker rather than dispatched.
//
// SCOPES:
//
// Every Query and PathMacro carries a ScopeID. The symbol environment maps
// (name, ScopeID) to a definition type; nested blocks name their enclosing
// block through the environment, not through the tree.
package ast
