package tasklists

// Details summarises what the Task Lists table offers, returned to callers
// after the table has been created.
type Details struct {
	Assignees  []string `json:"assignees"`
	Statuses   []string `json:"statuses"`
	Priorities []string `json:"priorities"`
	Features   []string `json:"features"`
}

var features = []string{
	"Task assignments to team members",
	"Progress tracking with percentage",
	"Due dates and time estimates",
	"Priority levels and status tracking",
	"Tags for categorization",
	"Detailed notes and descriptions",
	"Automatic creation and modification timestamps",
}

// Summary reads the choice lists from Table so the two never disagree.
func Summary() Details {
	t := Table()

	choices := func(name string) []string {
		f, _ := t.FieldByName(name)
		return f.ChoiceNames()
	}

	return Details{
		Assignees:  choices(FieldAssignedTo),
		Statuses:   choices(FieldStatus),
		Priorities: choices(FieldPriority),
		Features:   append([]string(nil), features...),
	}
}
