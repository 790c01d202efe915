// Package diag collects the located, typed findings of a type-check pass.
//
// A Diagnostic keeps its message as a template plus arguments so consumers
// can render or translate it; Message renders it. Kinds map to stable codes
// in the E200 range.
package diag
