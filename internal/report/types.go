// Package report defines per-session outcomes, their aggregation into
// phase and run reports, and the optional sqlite archive they persist to.
package report

import "time"

// Result is one account's outcome for one phase. Created once the account's
// unit of work finishes, immutable afterward.
type Result struct {
	Account string `json:"account"`
	Success bool   `json:"success"`
	Payload string `json:"payload,omitempty"`
	Err     string `json:"error,omitempty"`
}

// Succeeded builds a successful result.
func Succeeded(account, payload string) Result {
	return Result{Account: account, Success: true, Payload: payload}
}

// Failed builds a failed result carrying the original error message.
func Failed(account string, err error) Result {
	return Result{Account: account, Err: err.Error()}
}

// PhaseReport is the ordered result collection of one phase across all
// sessions. Its length always equals the number of sessions processed and
// its order always equals the input session order.
type PhaseReport struct {
	Phase   string   `json:"phase"`
	Results []Result `json:"results"`
}

// Succeeded counts successful results.
func (p PhaseReport) Succeeded() int {
	n := 0
	for _, r := range p.Results {
		if r.Success {
			n++
		}
	}
	return n
}

// Failed counts failed results.
func (p PhaseReport) Failed() int {
	return len(p.Results) - p.Succeeded()
}

// RunReport aggregates every completed phase of one run.
type RunReport struct {
	ID         string        `json:"id"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
	Phases     []PhaseReport `json:"phases"`
}

// TotalResults counts results across all phases.
func (r *RunReport) TotalResults() int {
	n := 0
	for _, p := range r.Phases {
		n += len(p.Results)
	}
	return n
}
