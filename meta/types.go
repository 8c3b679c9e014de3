package meta

import "strings"

// ParamType tags how a parameter's default text is meant to be read.
// The set is closed; adding a kind changes the schema.
type ParamType string

const (
	TypeBool      ParamType = "Bool"
	TypeI64       ParamType = "I64"
	TypeF64       ParamType = "F64"
	TypeString    ParamType = "String"
	TypeVec3      ParamType = "Vec3"
	TypeColorRgba ParamType = "ColorRgba"
)

// ParamTypes lists every ParamType in declaration order.
var ParamTypes = []ParamType{TypeBool, TypeI64, TypeF64, TypeString, TypeVec3, TypeColorRgba}

// Valid reports whether t is one of the known parameter types.
func (t ParamType) Valid() bool {
	for _, known := range ParamTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseParamType resolves a variant name, ignoring case.
func ParseParamType(s string) (ParamType, bool) {
	for _, known := range ParamTypes {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return "", false
}

// ParamMeta describes one script parameter.
type ParamMeta struct {
	Key     string    `json:"key" yaml:"key" toml:"key"`
	Label   string    `json:"label" yaml:"label" toml:"label"`
	Ty      ParamType `json:"ty" yaml:"ty" toml:"ty"`
	Default *string   `json:"default" yaml:"default" toml:"default,omitempty"` // opaque, never parsed
}

// ScriptMeta describes one script. Symbol is the fully qualified Go symbol
// (import path + "." + identifier) and is unique across a Schema.
type ScriptMeta struct {
	Name   string      `json:"name" yaml:"name" toml:"name"`
	Symbol string      `json:"rust_symbol" yaml:"rust_symbol" toml:"rust_symbol"`
	Params []ParamMeta `json:"params" yaml:"params" toml:"params,omitempty"`
}

// Schema is the exportable document.
type Schema struct {
	Scripts []ScriptMeta `json:"scripts" yaml:"scripts" toml:"scripts,omitempty"`
}

// Normalize replaces nil slices with empty ones so that decoded and
// collected schemas compare equal.
func (s *Schema) Normalize() {
	if s.Scripts == nil {
		s.Scripts = []ScriptMeta{}
	}
	for i := range s.Scripts {
		if s.Scripts[i].Params == nil {
			s.Scripts[i].Params = []ParamMeta{}
		}
	}
}
