package history

type PriorityChangedAttributes struct {
	Priority int `json:"priority"`
}
