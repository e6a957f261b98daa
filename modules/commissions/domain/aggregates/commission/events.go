package commission

// Events published on the application bus as records move through their
// lifecycle. Subscribers must not mutate the embedded commission.

type CreatedEvent struct {
	Result Commission
}

type StatusChangedEvent struct {
	ID   string
	From Status
	To   Status
}

type DeletedEvent struct {
	ID string
}

// CompensatedEvent fires when an optimistic mutation was rolled back
// after the server rejected it.
type CompensatedEvent struct {
	ID     string
	Action string
	Reason string
}
