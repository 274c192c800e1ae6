package domain

import (
	"time"

	"github.com/google/uuid"
)

// Artifact is one generated document. Content is kept out of JSON and out
// of the artifacts table; only the file on disk holds it.
type Artifact struct {
	ID          uuid.UUID  `json:"id"`
	SessionID   *uuid.UUID `json:"session_id,omitempty"`
	Style       string     `json:"style"`
	Format      string     `json:"format"`
	FileName    string     `json:"file_name"`
	FilePath    string     `json:"file_path"`
	ContentType string     `json:"content_type"`
	Size        int        `json:"size"`
	CreatedAt   time.Time  `json:"created_at"`
	Content     []byte     `json:"-"`
}
