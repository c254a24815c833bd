package history

// TaskDeletedAttributes is the projection removal signal. It does not
// change the task status; the event record itself is never removed.
type TaskDeletedAttributes struct {
}
