// Package store provides in-memory storage for evaluation history.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/lemonberrylabs/numcalc/pkg/expr"
	"github.com/lemonberrylabs/numcalc/pkg/types"
)

// DefaultLimit is the number of evaluations kept when no limit is given.
const DefaultLimit = 100

// EvaluationState represents the outcome of a stored evaluation.
type EvaluationState string

const (
	EvaluationSucceeded EvaluationState = "SUCCEEDED"
	EvaluationFailed    EvaluationState = "FAILED"
)

// Evaluation is one recorded calculator run.
type Evaluation struct {
	Name       string           `json:"name"`
	Input      string           `json:"input"`
	State      EvaluationState  `json:"state"`
	Output     string           `json:"output,omitempty"`
	Roman      bool             `json:"roman"`
	Error      *EvaluationError `json:"error,omitempty"`
	Source     string           `json:"source,omitempty"`
	CreateTime time.Time        `json:"createTime"`
}

// EvaluationError describes why an evaluation failed.
type EvaluationError struct {
	Kind    types.ErrorKind `json:"kind,omitempty"`
	Message string          `json:"message"`
}

// Stats summarizes the stored history.
type Stats struct {
	Total     int
	Succeeded int
	Failed    int
	Roman     int
}

// Store is a thread-safe, bounded in-memory history of evaluations.
type Store struct {
	mu    sync.RWMutex
	limit int
	order []string // oldest first
	evals map[string]*Evaluation

	// Counter for generating unique IDs
	evalCounter int64
}

// New creates a new empty store keeping at most limit evaluations. A
// non-positive limit selects DefaultLimit.
func New(limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{
		limit: limit,
		evals: make(map[string]*Evaluation),
	}
}

// Record stores the outcome of evaluating input. Exactly one of res and err
// is expected to be non-nil. source names the surface that ran it (repl,
// api, grpc, web). The input is stored without whitespace.
func (s *Store) Record(input, source string, res *expr.Result, err error) *Evaluation {
	input = expr.StripWhitespace(input)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evalCounter++
	ev := &Evaluation{
		Name:       fmt.Sprintf("eval-%d", s.evalCounter),
		Input:      input,
		Source:     source,
		CreateTime: time.Now(),
	}

	if err != nil {
		ev.State = EvaluationFailed
		ev.Error = &EvaluationError{
			Kind:    types.KindOf(err),
			Message: types.Message(err),
		}
	} else {
		ev.State = EvaluationSucceeded
		if res != nil {
			ev.Output = res.Output
			ev.Roman = res.Roman
		}
	}

	s.evals[ev.Name] = ev
	s.order = append(s.order, ev.Name)
	for len(s.order) > s.limit {
		delete(s.evals, s.order[0])
		s.order = s.order[1:]
	}
	return ev
}

// Get retrieves an evaluation by name.
func (s *Store) Get(name string) (*Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.evals[name]
	if !ok {
		return nil, fmt.Errorf("evaluation '%s' not found", name)
	}
	return ev, nil
}

// List returns stored evaluations, newest first.
func (s *Store) List() []*Evaluation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Evaluation, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		result = append(result, s.evals[s.order[i]])
	}
	return result
}

// Clear removes every stored evaluation. IDs keep increasing.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = nil
	s.evals = make(map[string]*Evaluation)
}

// Stats counts stored evaluations by outcome.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st Stats
	for _, ev := range s.evals {
		st.Total++
		switch ev.State {
		case EvaluationSucceeded:
			st.Succeeded++
		case EvaluationFailed:
			st.Failed++
		}
		if ev.Roman {
			st.Roman++
		}
	}
	return st
}
