package ecs

// System is one step of a frame. Query and Singleton fields on the system
// struct are bound by the Scheduler at registration; any other fields keep
// their state between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is what a system sees during one scheduler pass.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}
