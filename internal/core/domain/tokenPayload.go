package domain

import (
	"time"

	"github.com/google/uuid"
)

// TokenPayload is the identity carried by a verified bearer token.
type TokenPayload struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}
