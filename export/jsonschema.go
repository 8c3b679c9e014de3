package export

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/schema.json
var schemaJSON []byte

const schemaURL = "schema.json"

var printer = message.NewPrinter(language.English)

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("unmarshal json schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add json schema resource: %w", err)
	}
	sch, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile json schema: %w", err)
	}
	return sch, nil
})

// JSONSchema returns the JSON Schema that describes the JSON rendition.
func JSONSchema() []byte {
	return bytes.Clone(schemaJSON)
}

// ValidationError lists the places where a JSON document breaks the
// embedded JSON Schema.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return "schema document does not match json schema: " + strings.Join(e.Issues, "; ")
}

// validateJSON checks raw JSON against the embedded JSON Schema.
func validateJSON(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	err = sch.Validate(inst)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("validate json: %w", err)
	}
	out := &ValidationError{}
	collectIssues(ve, &out.Issues)
	if len(out.Issues) == 0 {
		out.Issues = append(out.Issues, ve.Error())
	}
	return out
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]string) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		msg := ve.Error()
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}
		*issues = append(*issues, path+": "+msg)
		return
	}
	for _, c := range ve.Causes {
		collectIssues(c, issues)
	}
}
