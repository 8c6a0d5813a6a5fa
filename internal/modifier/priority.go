package modifier

// Priorities of the built-in operations. When several modifiers apply to the
// same variable they run in ascending priority order.
const (
	PrioritySet = iota
	PriorityMultiply
	PriorityDivide
	PriorityAdd
	PrioritySubtract
	PriorityMax
	PriorityMin
)
