package history

type CommentRemovedAttributes struct {
	CommentID string `json:"comment_id,omitempty"`
}
