package history

type AttachmentRemovedAttributes struct {
	AttachmentID string `json:"attachment_id,omitempty"`
}
