package model

// Factor groups variables under a head variable. Vals is the factor's
// weight table indexed by instantiation number; nothing populates it yet.
type Factor struct {
	HeadVar string          `json:"head_var"`
	Vars    []string        `json:"vars,omitempty"`
	Vals    map[int]float64 `json:"vals,omitempty"`
}

func (f *Factor) setVars(vars []string) {
	f.Vars = append([]string(nil), vars...)
	f.Vals = map[int]float64{}
}

func (f *Factor) clone() Factor {
	c := Factor{HeadVar: f.HeadVar, Vals: make(map[int]float64, len(f.Vals))}
	if f.Vars != nil {
		c.Vars = append([]string(nil), f.Vars...)
	}
	for k, v := range f.Vals {
		c.Vals[k] = v
	}
	return c
}

// Sample is a partial boolean assignment to variables (evidence).
type Sample map[string]bool
