package widget

import "strings"

// Contract declares the parameters a widget type requires and permits.
// Required keys are always part of the permitted set.
type Contract struct {
	required  []string
	permitted []string
}

// NewContract builds a contract from required keys and the extra optional keys.
func NewContract(required []string, optional ...string) Contract {
	seen := make(map[string]struct{}, len(required)+len(optional))
	permitted := make([]string, 0, len(required)+len(optional))
	for _, k := range append(append([]string{}, required...), optional...) {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		permitted = append(permitted, k)
	}

	return Contract{
		required:  append([]string{}, required...),
		permitted: permitted,
	}
}

func (c Contract) Required() []string  { return append([]string{}, c.required...) }
func (c Contract) Permitted() []string { return append([]string{}, c.permitted...) }

// Validate drops keys outside the permitted set and fails when a required key is absent or blank.
func (c Contract) Validate(p Params) (Params, error) {
	allowed := make(map[string]struct{}, len(c.permitted))
	for _, k := range c.permitted {
		allowed[k] = struct{}{}
	}

	out := make(Params, len(p))
	for k, v := range p {
		if _, ok := allowed[k]; ok {
			out[k] = v
		}
	}

	verr := &ValidationError{}
	for _, k := range c.required {
		if !out.Present(k) {
			verr.Missing = append(verr.Missing, k)
		}
	}
	if !verr.empty() {
		return nil, verr
	}

	return out, nil
}

// Params is the flat name/value view of a widget request.
// Multi-valued parameters are comma separated.
type Params map[string]string

// Present reports whether key holds a non-blank value.
func (p Params) Present(key string) bool {
	return strings.TrimSpace(p[key]) != ""
}
