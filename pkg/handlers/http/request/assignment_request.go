package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateAssignmentRequest struct {
	CourseID string    `json:"courseId"`
	Title    string    `json:"title"`
	Points   int       `json:"points"`
	Due      time.Time `json:"due"`
}

func (r *CreateAssignmentRequest) Validate() error {
	if _, err := uuid.Parse(r.CourseID); err != nil {
		return fmt.Errorf("courseId must be a valid id")
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if r.Points < 0 {
		return fmt.Errorf("points must not be negative")
	}
	if r.Due.IsZero() {
		return fmt.Errorf("due is required")
	}
	return nil
}

type UpdateAssignmentRequest struct {
	Title  *string    `json:"title,omitempty"`
	Points *int       `json:"points,omitempty"`
	Due    *time.Time `json:"due,omitempty"`
}

func (r *UpdateAssignmentRequest) Validate() error {
	if r.Title == nil && r.Points == nil && r.Due == nil {
		return fmt.Errorf("request body does not contain any assignment fields")
	}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return fmt.Errorf("title must not be empty")
	}
	if r.Points != nil && *r.Points < 0 {
		return fmt.Errorf("points must not be negative")
	}
	if r.Due != nil && r.Due.IsZero() {
		return fmt.Errorf("due must be a valid date")
	}
	return nil
}

type GradeRequest struct {
	Grade *float64 `json:"grade"`
}

func (r *GradeRequest) Validate() error {
	if r.Grade == nil {
		return fmt.Errorf("grade is required")
	}
	if *r.Grade < 0 {
		return fmt.Errorf("grade must not be negative")
	}
	return nil
}
