// Package version selects which variant of the version-dependent type rules
// is active.
//
// PGQL changed several constraints between revisions. Rather than keeping one
// rule set per version, the checker consults a small Policy resolved once per
// analysis:
//
//	Setting                     v1.0        v1.1 and later
//	-------                     ----        --------------
//	ORDER BY vertex/edge        permitted   rejected
//	operand checks              permissive  enforced
//	arithmetic result           Integer     Numeric
//	edge correlation            checked     always rejected
//	scope conflict messages     shared      split
//
// An ORDER BY element may carry its own version tag; Policy.ForNode resolves
// the policy for that element only.
package version
