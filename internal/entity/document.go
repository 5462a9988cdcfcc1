package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// Document describes one uploaded certificate for the duration of a single
// extraction call. The core never persists the payload; bytes belong to the
// caller.
type Document struct {
	ID         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	MediaType  string    `json:"media_type,omitempty"`
	ContentSHA string    `json:"content_sha,omitempty"`
	ReceivedAt time.Time `json:"received_at,omitempty"`
}

// NewDocument builds a Document with a fresh ID.
func NewDocument(filename string) Document {
	return Document{
		ID:         uuid.New(),
		Filename:   filename,
		ReceivedAt: time.Now().UTC(),
	}
}

// HashContent returns the sha256 hex digest used for duplicate detection.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
