package history

import "humantask/core"

type AttachmentAddedAttributes struct {
	Attachment core.Attachment `json:"attachment,omitempty"`
}
