// Package export turns a meta.Schema into a document and back.
//
// Pretty is the canonical form: record notation with struct names and a
// two-space indent, stable enough to diff in version control. JSON, YAML and
// TOML renditions carry the same fields for tooling that prefers them.
package export
