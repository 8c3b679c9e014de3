// Package ron reads and writes the subset of Rusty Object Notation used by
// schema documents: named or anonymous structs, lists, strings, bare
// identifiers (enum variants) and Some/None options.
//
// The printer output is stable: equal values always produce identical text,
// with struct names, one field per line and trailing commas.
package ron
