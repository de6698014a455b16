package appointment

// Status is a closed enumeration. COMPLETED and CANCELED are terminal;
// the transition table below is the only source of truth for what moves
// are legal.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusInProcess Status = "in_process"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

var transitions = map[Status]map[Status]bool{
	StatusScheduled: {
		StatusInProcess: true,
		StatusCanceled:  true,
	},
	StatusInProcess: {
		StatusCompleted: true,
		StatusCanceled:  true,
	},
}

func CanTransition(from, to Status) bool {
	return transitions[from][to]
}

func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCanceled
}

// IsActive reports whether an appointment in this status blocks the
// doctor's calendar for conflict purposes.
func IsActive(s Status) bool {
	return s == StatusScheduled || s == StatusInProcess
}

// ActiveStatuses is the conflict-relevant status set in query form.
var ActiveStatuses = []string{string(StatusScheduled), string(StatusInProcess)}
