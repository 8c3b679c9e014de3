package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaValidate(t *testing.T) {
	ok := ScriptMeta{
		Name:   "Walker",
		Symbol: "example.com/m.Walker",
		Params: []ParamMeta{{Key: "speed", Label: "Speed", Ty: TypeF64}},
	}

	tests := []struct {
		name    string
		schema  Schema
		wantErr []string
	}{
		{name: "empty", schema: Schema{}},
		{name: "valid", schema: Schema{Scripts: []ScriptMeta{ok}}},
		{
			name:    "duplicate symbol",
			schema:  Schema{Scripts: []ScriptMeta{ok, ok}},
			wantErr: []string{`symbol "example.com/m.Walker" already used by scripts[0]`},
		},
		{
			name:    "empty symbol",
			schema:  Schema{Scripts: []ScriptMeta{{Name: "Anon"}}},
			wantErr: []string{`scripts[0] "Anon": empty symbol`},
		},
		{
			name: "bad params",
			schema: Schema{Scripts: []ScriptMeta{{
				Name:   "X",
				Symbol: "example.com/m.X",
				Params: []ParamMeta{
					{Key: "a", Ty: TypeBool},
					{Key: "a", Ty: TypeBool},
					{Key: "", Ty: TypeI64},
					{Key: "q", Ty: "Quat"},
				},
			}}},
			wantErr: []string{
				`params[1]: duplicate key "a"`,
				`params[2]: empty key`,
				`param "q": unknown type "Quat"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				for _, want := range tt.wantErr {
					assert.Contains(t, err.Error(), want)
				}
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	s := Schema{Scripts: []ScriptMeta{{Name: "a"}}}
	s.Normalize()
	assert.NotNil(t, s.Scripts[0].Params)

	var empty Schema
	empty.Normalize()
	assert.NotNil(t, empty.Scripts)
}
