// Package request builds the JSON document the remote inference engine
// accepts from the contents of a model store.
package request

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jeanpaul/factorpad/internal/model"
)

type Op string

const (
	OpMAP Op = "MAP" // maximum a posteriori over QueryVarSet
	OpMPE Op = "MPE" // most probable explanation
)

// ParseOp accepts "map" or "mpe" in any case.
func ParseOp(s string) (Op, error) {
	switch Op(strings.ToUpper(strings.TrimSpace(s))) {
	case OpMAP:
		return OpMAP, nil
	case OpMPE:
		return OpMPE, nil
	}
	return "", fmt.Errorf("unsupported operation %q (must be MAP or MPE)", s)
}

type Document struct {
	VarDb        []string      `json:"VarDb"`
	FactorSet    []FactorEntry `json:"FactorSet"`
	QueryVarSet  []string      `json:"QueryVarSet,omitempty"`
	SampleClause *SampleClause `json:"SampleClause,omitempty"`
	Op           Op            `json:"op"`
}

type FactorEntry struct {
	Vars []string  `json:"vars"`
	Head []string  `json:"head"`
	Vals []float64 `json:"vals"`
}

// SampleClause carries evidence as parallel arrays; values are 1 for true
// and 0 for false.
type SampleClause struct {
	VarSet []string `json:"varset"`
	Values []int    `json:"values"`
}

// Build snapshots s into a request document. The result set becomes the
// query variable set.
func Build(s *model.Store, op Op) Document {
	doc := Document{
		VarDb:       s.Variables(),
		FactorSet:   []FactorEntry{},
		QueryVarSet: s.ResultSet(),
		Op:          op,
	}
	for _, f := range s.Factors() {
		doc.FactorSet = append(doc.FactorSet, factorEntry(f))
	}

	sample := s.Sample()
	if len(sample) > 0 {
		names := make([]string, 0, len(sample))
		for name := range sample {
			names = append(names, name)
		}
		sort.Strings(names)
		clause := &SampleClause{VarSet: names, Values: make([]int, len(names))}
		for i, name := range names {
			if sample[name] {
				clause.Values[i] = 1
			}
		}
		doc.SampleClause = clause
	}
	return doc
}

// The engine expects the head to be the last factor variable.
func factorEntry(f model.Factor) FactorEntry {
	vars := append([]string{}, f.Vars...)
	hasHead := false
	for _, v := range vars {
		if v == f.HeadVar {
			hasHead = true
			break
		}
	}
	if !hasHead {
		vars = append(vars, f.HeadVar)
	}
	return FactorEntry{
		Vars: vars,
		Head: []string{f.HeadVar},
		Vals: denseVals(f.Vals),
	}
}

func denseVals(sparse map[int]float64) []float64 {
	n := 0
	for idx := range sparse {
		if idx >= n {
			n = idx + 1
		}
	}
	vals := make([]float64, n)
	for idx, v := range sparse {
		if idx >= 0 {
			vals[idx] = v
		}
	}
	return vals
}

// Encode renders the document as indented JSON text.
func (d Document) Encode() (string, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}
	return string(data), nil
}
