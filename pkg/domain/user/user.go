package user

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string        `json:"name"`
	Email     string        `json:"email" gorm:"uniqueIndex"`
	Password  string        `json:"-"`
	Role      identity.Role `json:"role"`
	CreatedAt time.Time     `json:"-"`
	UpdatedAt time.Time     `json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	return u.Validate()
}

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return u.Validate()
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return domain.NewValidationError("name is required")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return domain.NewValidationError("invalid email: %v", err)
	}
	if !u.Role.Valid() {
		return domain.NewValidationError("invalid role %q", u.Role)
	}
	return nil
}

func (u *User) Identity() *identity.Identity {
	return &identity.Identity{ID: u.ID, Role: u.Role}
}
