package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession is a single planning conversation. Messages and ancestry
// uploads hang off it.
type ChatSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
