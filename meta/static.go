package meta

// OptText is optional text that can be spelled as a composite literal of
// constants, unlike *string.
type OptText struct {
	Text string
	Set  bool
}

// Some returns a set OptText.
func Some(text string) OptText { return OptText{Text: text, Set: true} }

// ParamMetaStatic is the static counterpart of ParamMeta.
type ParamMetaStatic struct {
	Key     string
	Label   string
	Ty      ParamType
	Default OptText
}

// ScriptMetaStatic is the static counterpart of ScriptMeta. Generated code
// declares these as package-level literals built only from constants, which
// the linker lays out as data: registering them allocates nothing.
type ScriptMetaStatic struct {
	Name   string
	Symbol string
	Params []ParamMetaStatic
}

// ScriptInventory is the unit of registration.
type ScriptInventory struct {
	Script *ScriptMetaStatic
}

// Owned converts p to its owned form.
func (p ParamMetaStatic) Owned() ParamMeta {
	out := ParamMeta{
		Key:   p.Key,
		Label: p.Label,
		Ty:    p.Ty,
	}
	if p.Default.Set {
		d := p.Default.Text
		out.Default = &d
	}
	return out
}

// Owned converts s to its owned form, keeping parameter order.
func (s *ScriptMetaStatic) Owned() ScriptMeta {
	params := make([]ParamMeta, 0, len(s.Params))
	for _, p := range s.Params {
		params = append(params, p.Owned())
	}
	return ScriptMeta{
		Name:   s.Name,
		Symbol: s.Symbol,
		Params: params,
	}
}
