package model

import "time"

// Document is a user-owned JSON document. Content is kept as raw text; the
// service guarantees it parses as JSON before it ever reaches the store.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Slug      string    `json:"slug"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateDocumentRequest struct {
	Title   string `json:"title" validate:"required,max=100"`
	Content string `json:"content" validate:"required,json"`
}

// UpdateDocumentRequest is a partial update. Absent fields keep their stored
// value; present fields are re-validated exactly like on create.
type UpdateDocumentRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=100"`
	Content *string `json:"content" validate:"omitempty,json"`
}

type DeleteDocumentResponse struct {
	Success bool `json:"success"`
}
