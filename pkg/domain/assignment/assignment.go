package assignment

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	"github.com/tarpaulin/tarpaulin/pkg/infra/database/types"
	"gorm.io/gorm"
)

type Assignment struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	CourseID    uuid.UUID       `json:"courseId" gorm:"type:uuid;index"`
	Title       string          `json:"title"`
	Points      int             `json:"points"`
	Due         time.Time       `json:"due"`
	Submissions types.UUIDArray `json:"-" gorm:"type:uuid[]"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`
}

func (Assignment) TableName() string {
	return "assignments"
}

func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	return a.Validate()
}

func (a *Assignment) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return a.Validate()
}

func (a *Assignment) Validate() error {
	if a.CourseID == uuid.Nil {
		return domain.NewValidationError("courseId is required")
	}
	if strings.TrimSpace(a.Title) == "" {
		return domain.NewValidationError("title is required")
	}
	if a.Points < 0 {
		return domain.NewValidationError("points must not be negative")
	}
	if a.Due.IsZero() {
		return domain.NewValidationError("due is required")
	}
	return nil
}
