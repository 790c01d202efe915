// Package checker infers a type for every expression of a name-resolved PGQL
// query and reports the constructs that are ill-typed.
//
// The pass runs bottom-up: children are typed before their parent, left to
// right, and each query block is visited in clause order (projections or
// modifications, path macros, MATCH, WHERE, GROUP BY, HAVING, ORDER BY,
// LIMIT, OFFSET). It is error-tolerant. A rule that reports a diagnostic
// still returns a type, so one run yields every independent finding.
//
// Unknown is the type of things that cannot be decided statically (casts,
// function calls, bind variables, property values). It never fails a
// forbidden-type check.
//
// Version-dependent behavior is taken from a version.Policy chosen per run;
// an ORDER BY element carrying its own version tag is checked under the
// policy for that tag.
//
// Runner checks independent queries concurrently.
package checker
