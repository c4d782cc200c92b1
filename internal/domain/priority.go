package domain

// MessagePriority is the urgency tag on a message.
type MessagePriority string

const (
	PriorityLow    MessagePriority = "low"
	PriorityNormal MessagePriority = "normal"
	PriorityHigh   MessagePriority = "high"
)

// Valid reports whether p is one of the three defined priorities.
func (p MessagePriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

// priorityLabelsPl is the fixed Polish label table used by the CSV export.
// Kept as one explicit mapping rather than scattered literals.
var priorityLabelsPl = map[MessagePriority]string{
	PriorityLow:    "Niski",
	PriorityNormal: "Normalny",
	PriorityHigh:   "Wysoki",
}

// PolishLabel returns the export label for the priority.
// Unknown values fall back to the raw value.
func (p MessagePriority) PolishLabel() string {
	if label, ok := priorityLabelsPl[p]; ok {
		return label
	}
	return string(p)
}
