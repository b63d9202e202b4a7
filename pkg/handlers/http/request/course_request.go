package request

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type CreateCourseRequest struct {
	Subject      string `json:"subject"`
	Number       string `json:"number"`
	Title        string `json:"title"`
	Term         string `json:"term"`
	InstructorID string `json:"instructorId"`
}

func (r *CreateCourseRequest) Validate() error {
	if strings.TrimSpace(r.Subject) == "" {
		return fmt.Errorf("subject is required")
	}
	if strings.TrimSpace(r.Number) == "" {
		return fmt.Errorf("number is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(r.Term) == "" {
		return fmt.Errorf("term is required")
	}
	if _, err := uuid.Parse(r.InstructorID); err != nil {
		return fmt.Errorf("instructorId must be a valid id")
	}
	return nil
}

// UpdateCourseRequest holds a partial update; nil fields are left unchanged.
type UpdateCourseRequest struct {
	Subject      *string `json:"subject,omitempty"`
	Number       *string `json:"number,omitempty"`
	Title        *string `json:"title,omitempty"`
	Term         *string `json:"term,omitempty"`
	InstructorID *string `json:"instructorId,omitempty"`
}

func (r *UpdateCourseRequest) Validate() error {
	if r.Subject == nil && r.Number == nil && r.Title == nil && r.Term == nil && r.InstructorID == nil {
		return fmt.Errorf("request body does not contain any course fields")
	}
	fields := []struct {
		name  string
		value *string
	}{
		{"subject", r.Subject},
		{"number", r.Number},
		{"title", r.Title},
		{"term", r.Term},
	}
	for _, f := range fields {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			return fmt.Errorf("%s must not be empty", f.name)
		}
	}
	if r.InstructorID != nil {
		if _, err := uuid.Parse(*r.InstructorID); err != nil {
			return fmt.Errorf("instructorId must be a valid id")
		}
	}
	return nil
}

type EnrollmentRequest struct {
	Add    []string `json:"add"`
	Remove []string `json:"remove"`
}

func (r *EnrollmentRequest) Validate() error {
	if len(r.Add) == 0 && len(r.Remove) == 0 {
		return fmt.Errorf("request body must contain add or remove")
	}
	if _, err := r.AddIDs(); err != nil {
		return err
	}
	if _, err := r.RemoveIDs(); err != nil {
		return err
	}
	return nil
}

func (r *EnrollmentRequest) AddIDs() ([]uuid.UUID, error) {
	return parseIDs("add", r.Add)
}

func (r *EnrollmentRequest) RemoveIDs() ([]uuid.UUID, error) {
	return parseIDs("remove", r.Remove)
}

func parseIDs(field string, raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("%s contains an invalid id %q", field, s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
