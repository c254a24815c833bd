package history

// TaskActivatedAttributes marks the transition out of the transient Created
// status into Ready. Emitted atomically with TaskCreated.
type TaskActivatedAttributes struct {
}
