// Package fixture loads queries to check from YAML and CUE documents.
//
// Parsing and name resolution happen upstream, so a fixture describes the
// resolved query tree directly. Pattern variables are derived from MATCH
// clauses; a document's symbols section adds or overrides definitions per
// scope:
//
//	name: order-by-vertex
//	version: v1.1
//	query:
//	  select:
//	    - expr: {var: n}
//	  match:
//	    - elements: [{vertex: n}, {edge: e}, {vertex: m}]
//	  order_by:
//	    - expr: {var: n}
package fixture
