package model

import (
	"sync"

	"github.com/google/uuid"
)

// Store holds the variables, factors, sample and result set of one editing
// session. Construct it once with NewStore and hand it to whatever needs it.
type Store struct {
	mu      sync.RWMutex
	id      string
	vars    []string
	factors map[string]*Factor
	order   []string // factor keys in insertion order
	sample  Sample
	results []string
}

func NewStore() *Store {
	return &Store{
		id:      uuid.New().String(),
		factors: make(map[string]*Factor),
		sample:  make(Sample),
	}
}

// ID identifies the session the store belongs to.
func (s *Store) ID() string { return s.id }

// Reset drops all session state. The session ID is kept.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vars = nil
	s.factors = make(map[string]*Factor)
	s.order = nil
	s.sample = make(Sample)
	s.results = nil
}

// --- Variables ---

// AddVariable appends name unless it is already registered.
func (s *Store) AddVariable(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOf(s.vars, name) >= 0 {
		return
	}
	s.vars = append(s.vars, name)
}

// Variables returns a copy of the registered names in insertion order.
func (s *Store) Variables() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.vars...)
}

func (s *Store) HasVariable(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.vars, name) >= 0
}

// DeleteVariable removes name from the registry. Factors that reference it
// keep the reference; see DanglingReferences.
func (s *Store) DeleteVariable(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.vars, name); i >= 0 {
		s.vars = append(s.vars[:i], s.vars[i+1:]...)
	}
}

// --- Factors ---

// AddFactor creates a factor keyed by head. Existing factors are left alone.
func (s *Store) AddFactor(head string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.factors[head]; ok {
		return
	}
	s.factors[head] = &Factor{HeadVar: head, Vals: map[int]float64{}}
	s.order = append(s.order, head)
}

func (s *Store) DeleteFactor(head string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.factors[head]; !ok {
		return
	}
	delete(s.factors, head)
	if i := indexOf(s.order, head); i >= 0 {
		s.order = append(s.order[:i], s.order[i+1:]...)
	}
}

// FactorKeys lists the heads of all factors. Callers should not depend on
// the order.
func (s *Store) FactorKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.order...)
}

// SetFactorVariables replaces the variables of the factor keyed by head and
// clears its value table. Unknown heads are ignored.
func (s *Store) SetFactorVariables(head string, vars []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.factors[head]; ok {
		f.setVars(vars)
	}
}

// FactorVariables returns the variables of the factor keyed by head, or an
// empty slice when there is no such factor.
func (s *Store) FactorVariables(head string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.factors[head]
	if !ok {
		return []string{}
	}
	return append([]string{}, f.Vars...)
}

// Factor returns a copy of the factor keyed by head.
func (s *Store) Factor(head string) (Factor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.factors[head]
	if !ok {
		return Factor{}, false
	}
	return f.clone(), true
}

// Factors returns copies of all factors in key order.
func (s *Store) Factors() []Factor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Factor, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.factors[k].clone())
	}
	return out
}

// DanglingReferences reports, per factor head, the factor variables that are
// no longer in the variable registry. Factors without such references are
// omitted.
func (s *Store) DanglingReferences() map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]string)
	for _, k := range s.order {
		for _, v := range s.factors[k].Vars {
			if indexOf(s.vars, v) < 0 {
				out[k] = append(out[k], v)
			}
		}
	}
	return out
}

// --- Sample and result set ---

func (s *Store) SetSampleValue(name string, val bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sample[name] = val
}

func (s *Store) DeleteSampleValue(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sample, name)
}

// Sample returns a copy of the current evidence assignment.
func (s *Store) Sample() Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(Sample, len(s.sample))
	for k, v := range s.sample {
		out[k] = v
	}
	return out
}

func (s *Store) SetResultSet(v []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append([]string(nil), v...)
}

func (s *Store) ResultSet() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.results...)
}

func indexOf(list []string, v string) int {
	for i, item := range list {
		if item == v {
			return i
		}
	}
	return -1
}
