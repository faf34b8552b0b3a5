package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session rows are written by the identity service; this application
// only reads them to resolve the caller's user id and role.
type Session struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	Token     string    `db:"token"`
	Role      string    `db:"role"`
	ExpiresAt time.Time `db:"expires_at"`
}
