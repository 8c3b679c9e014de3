package meta

import (
	"errors"
	"fmt"
)

// Validate checks the invariants the exporter itself does not enforce:
// symbols are present and unique, parameter keys are present and unique
// within their script, and every parameter type is known.
func (s Schema) Validate() error {
	var errs []error
	seen := make(map[string]int, len(s.Scripts))
	for i, sc := range s.Scripts {
		if sc.Symbol == "" {
			errs = append(errs, fmt.Errorf("scripts[%d] %q: empty symbol", i, sc.Name))
		} else if first, dup := seen[sc.Symbol]; dup {
			errs = append(errs, fmt.Errorf("scripts[%d]: symbol %q already used by scripts[%d]", i, sc.Symbol, first))
		} else {
			seen[sc.Symbol] = i
		}

		keys := make(map[string]struct{}, len(sc.Params))
		for j, p := range sc.Params {
			switch {
			case p.Key == "":
				errs = append(errs, fmt.Errorf("%s: params[%d]: empty key", sc.Symbol, j))
			default:
				if _, dup := keys[p.Key]; dup {
					errs = append(errs, fmt.Errorf("%s: params[%d]: duplicate key %q", sc.Symbol, j, p.Key))
				}
				keys[p.Key] = struct{}{}
			}
			if !p.Ty.Valid() {
				errs = append(errs, fmt.Errorf("%s: param %q: unknown type %q", sc.Symbol, p.Key, p.Ty))
			}
		}
	}
	return errors.Join(errs...)
}
