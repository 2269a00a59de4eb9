package domain

import "time"

type Notification struct {
	ID         string            `json:"id"`
	UserID     string            `json:"userID"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Read       bool              `json:"read"`
	CreatedOn  time.Time         `json:"createdOn"`
}
