package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultRole is assigned when a user is created without an explicit role.
const DefaultRole = "user"

// User represents an authenticated user in the system. The credential column
// holds a bcrypt hash, never the submitted plaintext. Email carries no unique
// index; login resolves the first match.
type User struct {
	ID                 uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Email              string    `json:"email" gorm:"size:255;not null;index"`
	PasswordCredential string    `json:"passwordCredential" gorm:"size:255;not null"`
	Role               string    `json:"role" gorm:"size:50;default:'user'"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
