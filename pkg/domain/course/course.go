package course

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	"github.com/tarpaulin/tarpaulin/pkg/infra/database/types"
	"gorm.io/gorm"
)

type Course struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Subject      string          `json:"subject"`
	Number       string          `json:"number"`
	Title        string          `json:"title"`
	Term         string          `json:"term"`
	InstructorID uuid.UUID       `json:"instructorId" gorm:"type:uuid;index"`
	Students     types.UUIDArray `json:"-" gorm:"type:uuid[]"`
	CreatedAt    time.Time       `json:"-"`
	UpdatedAt    time.Time       `json:"-"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	return c.Validate()
}

func (c *Course) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return c.Validate()
}

func (c *Course) Validate() error {
	if strings.TrimSpace(c.Subject) == "" {
		return domain.NewValidationError("subject is required")
	}
	if strings.TrimSpace(c.Number) == "" {
		return domain.NewValidationError("number is required")
	}
	if strings.TrimSpace(c.Title) == "" {
		return domain.NewValidationError("title is required")
	}
	if strings.TrimSpace(c.Term) == "" {
		return domain.NewValidationError("term is required")
	}
	if c.InstructorID == uuid.Nil {
		return domain.NewValidationError("instructorId is required")
	}
	return nil
}

func (c *Course) IsInstructor(userID uuid.UUID) bool {
	return c.InstructorID == userID
}

func (c *Course) IsEnrolled(userID uuid.UUID) bool {
	return c.Students.Contains(userID)
}
