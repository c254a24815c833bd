package history

type TaskResumedAttributes struct {
}
