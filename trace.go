package skin

import (
	"encoding/json"
)

// Trace records how a single table resolved a query.
type Trace struct {
	TableID    string      `json:"table_id,omitempty"`
	Query      Aspect      `json:"query"`
	Masked     Aspect      `json:"masked"`
	Candidates []Candidate `json:"candidates"`
	Resolved   Aspect      `json:"resolved"`
	Value      string      `json:"value,omitempty"`
	Found      bool        `json:"found"`
}

// Candidate is one lookup performed during resolution.
type Candidate struct {
	Aspect Aspect `json:"aspect"`
	Label  string `json:"label"`
	Step   Step   `json:"step"`
	Found  bool   `json:"found"`
}

// StackTrace records how every layer of a stack handled a query. Layers
// after the one that answered are not consulted and do not appear.
type StackTrace struct {
	Query  Aspect       `json:"query"`
	Layers []Provenance `json:"layers"`
}

// Provenance details how one stack layer contributed to a query.
type Provenance struct {
	Scope Scope `json:"scope"`
	Trace Trace `json:"trace"`
}

// Winner returns the layer that answered the query.
func (s StackTrace) Winner() (Provenance, bool) {
	for _, layer := range s.Layers {
		if layer.Trace.Found {
			return layer, true
		}
	}
	return Provenance{}, false
}

// ToJSON serialises the trace for logging or debugging tools.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a payload produced by Trace.ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}

// ToJSON serialises the stack trace.
func (s StackTrace) ToJSON() ([]byte, error) {
	type alias StackTrace
	return json.Marshal(alias(s))
}

// StackTraceFromJSON deserialises a payload produced by StackTrace.ToJSON.
func StackTraceFromJSON(payload []byte) (StackTrace, error) {
	type alias StackTrace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return StackTrace{}, err
	}
	return StackTrace(trace), nil
}
