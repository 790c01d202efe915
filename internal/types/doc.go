// Package types defines the closed set of semantic types used by the PGQL
// type checker and the predicates every rule is written against.
//
// There is no subtyping lattice. Each rule states its own forbidden set
// ("fails if the operand is a Vertex or an Edge") and asks Forbidden. The
// Unknown type stands for anything that cannot be determined statically
// (property accesses, bind variables, casts, untyped NULL) and passes every
// such test.
//
// This package imports nothing internal; every other package builds on it.
package types
