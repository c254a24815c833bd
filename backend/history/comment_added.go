package history

import "humantask/core"

type CommentAddedAttributes struct {
	Comment core.Comment `json:"comment,omitempty"`
}
