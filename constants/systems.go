package constants

// System priorities, lower runs first within a tick
const (
	PrioritySpawn  = 10
	PriorityWander = 20
	PriorityMotion = 30
)
