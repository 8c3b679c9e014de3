package ron

// Value is one node of a document.
type Value interface {
	ronValue()
}

// Struct is a record. Name is empty for anonymous structs.
type Struct struct {
	Name   string
	Fields []Field
}

// Field is a named struct member. Fields keep their document order.
type Field struct {
	Name  string
	Value Value
}

// List is a sequence of values.
type List []Value

// String is quoted text.
type String string

// Ident is a bare identifier, used for unit enum variants.
type Ident string

// Option is Some(Value) or, when Value is nil, None.
type Option struct {
	Value Value
}

func (Struct) ronValue() {}
func (List) ronValue()   {}
func (String) ronValue() {}
func (Ident) ronValue()  {}
func (Option) ronValue() {}

// Get returns the value of the named field.
func (s Struct) Get(name string) (Value, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// None is the empty option.
var None = Option{}

// Some wraps v in an option.
func Some(v Value) Option { return Option{Value: v} }
