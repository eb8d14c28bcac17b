package types

// Extension instance status constants
const (
	// StatusLoaded indicates the entry point is bound but not yet invoked
	StatusLoaded = "loaded"
	// StatusRunning indicates the instance is mounted and may exchange events
	StatusRunning = "running"
	// StatusError indicates the entry point failed during activation
	StatusError = "error"
	// StatusDestroyed indicates the instance has been torn down
	StatusDestroyed = "destroyed"
)
