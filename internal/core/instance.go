package core

// Instance is a point-in-time snapshot of a provider instance. It is never mutated by the scaler.
type Instance struct {
	ID    string            `json:"id"`
	Tags  map[string]string `json:"tags"`
	State string            `json:"state,omitempty"`
}

// Slot is a worker instance with its parsed ordinal.
type Slot struct {
	Ordinal    Ordinal `json:"ordinal"`
	InstanceID string  `json:"instanceId"`
}
