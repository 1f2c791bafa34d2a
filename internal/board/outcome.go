package board

// Outcome is how a gesture or command ended.
type Outcome int

const (
	OutcomeNone       Outcome = iota // no gesture was active
	OutcomeDispatched                // a persistence command was issued
	OutcomeConflict                  // rejected by the overlap check, user warned
	OutcomeClick                     // no drag; the editor was opened
	OutcomeDiscarded                 // released outside the grid
	OutcomeUnchanged                 // released where it started
	OutcomeStale                     // target shift no longer exists
	OutcomeBusy                      // target shift has a pending command
	OutcomeRejected                  // input cannot produce a valid shift
)

var outcomeNames = [...]string{
	OutcomeNone:       "none",
	OutcomeDispatched: "dispatched",
	OutcomeConflict:   "conflict",
	OutcomeClick:      "click",
	OutcomeDiscarded:  "discarded",
	OutcomeUnchanged:  "unchanged",
	OutcomeStale:      "stale",
	OutcomeBusy:       "busy",
	OutcomeRejected:   "rejected",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}
