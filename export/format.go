package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/Alia5/scriptmeta/meta"
	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// Format names a document encoding.
type Format string

const (
	FormatRON  Format = "ron"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnsupportedFormat is returned for unknown format names.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseFormat normalizes a format name ("yml" is accepted for YAML).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "ron":
		return FormatRON, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatFromPath picks a format from a file extension, falling back to RON.
func FormatFromPath(path string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return FormatRON
	}
	return f
}

// Encode writes s to w. Every format ends with a newline.
func Encode(w io.Writer, s meta.Schema, f Format) error {
	if err := checkText(s); err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	s = normalized(s)

	var data []byte
	switch f {
	case FormatRON:
		text, err := Pretty(s)
		if err != nil {
			return err
		}
		data = []byte(text + "\n")
	case FormatJSON:
		b, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		data = append(b, '\n')
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		data = buf.Bytes()
	case FormatTOML:
		b, err := toml.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		data = b
		if len(data) == 0 || data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}

	_, err := w.Write(data)
	return err
}

// Decode reads a schema document from r. JSON input is checked against the
// embedded JSON Schema first; for the other formats parameter types are
// checked after decoding.
func Decode(r io.Reader, f Format) (meta.Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return meta.Schema{}, fmt.Errorf("read schema document: %w", err)
	}

	var s meta.Schema
	switch f {
	case FormatRON:
		s, err = ParsePretty(string(data))
		if err != nil {
			return meta.Schema{}, err
		}
	case FormatJSON:
		if err := validateJSON(data); err != nil {
			return meta.Schema{}, err
		}
		if err := json.Unmarshal(data, &s); err != nil {
			return meta.Schema{}, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return meta.Schema{}, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &s); err != nil {
			return meta.Schema{}, fmt.Errorf("decode toml: %w", err)
		}
	default:
		return meta.Schema{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}

	for i, sc := range s.Scripts {
		for j, p := range sc.Params {
			if !p.Ty.Valid() {
				return meta.Schema{}, fmt.Errorf("scripts[%d].params[%d].ty: unknown variant %q", i, j, p.Ty)
			}
		}
	}
	s.Normalize()
	return s, nil
}

// ErrInvalidText is returned when a text field is not valid UTF-8.
var ErrInvalidText = errors.New("text is not valid UTF-8")

func checkText(s meta.Schema) error {
	var errs []error
	bad := func(path, text string) {
		if !utf8.ValidString(text) {
			errs = append(errs, fmt.Errorf("%s: %w: %q", path, ErrInvalidText, text))
		}
	}
	for i, sc := range s.Scripts {
		bad(fmt.Sprintf("scripts[%d].name", i), sc.Name)
		bad(fmt.Sprintf("scripts[%d].rust_symbol", i), sc.Symbol)
		for j, p := range sc.Params {
			at := fmt.Sprintf("scripts[%d].params[%d]", i, j)
			bad(at+".key", p.Key)
			bad(at+".label", p.Label)
			bad(at+".ty", string(p.Ty))
			if p.Default != nil {
				bad(at+".default", *p.Default)
			}
		}
	}
	return errors.Join(errs...)
}

// normalized returns a copy of s with nil slices replaced, leaving the
// caller's value untouched.
func normalized(s meta.Schema) meta.Schema {
	s.Scripts = slices.Clone(s.Scripts)
	s.Normalize()
	return s
}
