package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room represents a collaborative space identified by a short room code.
// Ownership is a plain reference; the owner id is never checked against the
// users table, and deleting a room does not touch its tasks.
type Room struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	RoomCode    string    `json:"roomCode" gorm:"size:64;not null;uniqueIndex"`
	OwnerUserID string    `json:"ownerUserId" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
