package entity

import (
	"time"
)

// Status is the outcome of a single agent execution.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Result is the uniform envelope every agent produces: identity, outcome,
// payload, timing and error. Exactly one of Payload/Error is populated,
// consistent with Status. A Result is never mutated after the scheduler
// records it.
type Result struct {
	AgentID  string        `json:"agent_id"`
	Status   Status        `json:"status"`
	Payload  any           `json:"payload,omitempty"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// Succeed builds a success envelope.
func Succeed(agentID string, payload any, d time.Duration) Result {
	return Result{
		AgentID:  agentID,
		Status:   StatusSuccess,
		Payload:  payload,
		Duration: d,
	}
}

// Fail builds a failure envelope. There is no partial state: an agent either
// fully succeeded or is recorded as failed.
func Fail(agentID string, msg string, d time.Duration) Result {
	return Result{
		AgentID:  agentID,
		Status:   StatusFailure,
		Duration: d,
		Error:    msg,
	}
}

// OK reports whether the envelope carries a successful outcome.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Valid checks the envelope shape invariant: a known status and exactly one
// of Payload/Error populated.
func (r Result) Valid() bool {
	switch r.Status {
	case StatusSuccess:
		return r.Error == ""
	case StatusFailure:
		return r.Payload == nil && r.Error != ""
	default:
		return false
	}
}

// ResultSet is an insertion-ordered collection of envelopes keyed by agent ID.
// Iteration order is always registration order, independent of the order in
// which agents finished. The set is owned by the pipeline: agents only return
// envelopes, they never write into it.
type ResultSet struct {
	ids  []string
	byID map[string]Result
}

// NewResultSet returns an empty set.
func NewResultSet() *ResultSet {
	return &ResultSet{byID: make(map[string]Result)}
}

// Add records an envelope. A repeated agent ID replaces the value but keeps
// the original position.
func (s *ResultSet) Add(r Result) {
	if _, exists := s.byID[r.AgentID]; !exists {
		s.ids = append(s.ids, r.AgentID)
	}
	s.byID[r.AgentID] = r
}

// Merge appends every envelope of other, in other's order.
func (s *ResultSet) Merge(other *ResultSet) {
	if other == nil {
		return
	}
	for _, r := range other.All() {
		s.Add(r)
	}
}

// Get returns the envelope for an agent ID.
func (s *ResultSet) Get(agentID string) (Result, bool) {
	r, ok := s.byID[agentID]
	return r, ok
}

// IDs returns the agent IDs in registration order.
func (s *ResultSet) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// All returns the envelopes in registration order.
func (s *ResultSet) All() []Result {
	out := make([]Result, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.byID[id])
	}
	return out
}

// Len returns the number of recorded envelopes.
func (s *ResultSet) Len() int {
	return len(s.ids)
}
