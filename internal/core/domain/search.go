package domain

import "time"

// SearchKind selects the backend endpoint used by a search.
type SearchKind string

const (
	SearchCarrier   SearchKind = "carrier"
	SearchBroadArea SearchKind = "broad_area"
)

// Phase is the orchestrator state.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
)

// Outcome records how the last completed search ended.
type Outcome string

const (
	OutcomeNone    Outcome = "none"
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// SearchRecord describes the most recently committed search.
type SearchRecord struct {
	Seq      uint64        `json:"seq"`
	Kind     SearchKind    `json:"kind"`
	Carrier  string        `json:"carrier,omitempty"`
	Outcome  Outcome       `json:"outcome"`
	Elapsed  time.Duration `json:"elapsed"`
	Towers   int           `json:"towers"`
	Finished time.Time     `json:"finished"`
}

// SessionState is a read-only snapshot of the session.
type SessionState struct {
	Selection  *Coordinate   `json:"selection,omitempty"`
	View       MapView       `json:"view"`
	Towers     []Tower       `json:"towers"`
	Filter     TowerFilter   `json:"filter"`
	Summary    []SummaryRow  `json:"summary"`
	Phase      Phase         `json:"phase"`
	InFlight   uint64        `json:"in_flight_seq,omitempty"`
	LastSearch *SearchRecord `json:"last_search,omitempty"`
	Markers    int           `json:"markers"`
	Circles    int           `json:"circles"`
	HasDropPin bool          `json:"has_drop_pin"`
}
