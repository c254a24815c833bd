package history

type TaskStartedAttributes struct {
}
