package search

// State of a search submission.
type State string

const (
	StateIdle      State = "idle"
	StateSearching State = "searching"
	StateResults   State = "results"
	StateError     State = "error"
)

// Outcome is what the search view renders. Performed distinguishes "searched
// and found nothing" from "never searched".
type Outcome struct {
	Performed bool     `json:"performed"`
	State     State    `json:"state"`
	Query     string   `json:"query,omitempty"`
	Summary   string   `json:"summary"`
	Sources   []Source `json:"sources"`
	Error     string   `json:"error,omitempty"`
}

// Idle is the outcome before any accepted submission.
func Idle() Outcome {
	return Outcome{State: StateIdle, Sources: []Source{}}
}

// Searching marks an accepted submission.
func Searching(query string) Outcome {
	return Outcome{Performed: true, State: StateSearching, Query: query, Sources: []Source{}}
}

// Succeeded moves a searching outcome to results.
func (o Outcome) Succeeded(r Result) Outcome {
	o.State = StateResults
	o.Summary = r.Summary
	o.Sources = r.Sources
	if o.Sources == nil {
		o.Sources = []Source{}
	}
	o.Error = ""
	return o
}

// Failed moves a searching outcome to error.
func (o Outcome) Failed(message string) Outcome {
	o.State = StateError
	o.Error = message
	return o
}
