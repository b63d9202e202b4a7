package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	"github.com/tarpaulin/tarpaulin/pkg/domain/assignment"
	"github.com/tarpaulin/tarpaulin/pkg/infra/database/types"
	"gorm.io/gorm"
)

const assignmentEntity = "Assignment"

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) assignment.Repository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Save(ctx context.Context, a *assignment.Assignment) error {
	if a.Submissions == nil {
		a.Submissions = types.UUIDArray{}
	}
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*assignment.Assignment, error) {
	entity := new(assignment.Assignment)
	if err := r.db.WithContext(ctx).First(entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError(assignmentEntity, id)
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return entity, nil
}

func (r *AssignmentRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]assignment.Assignment, error) {
	assignments := make([]assignment.Assignment, 0)
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("due, id").
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

func (r *AssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	res := r.db.WithContext(ctx).
		Model(a).
		Select("course_id", "title", "points", "due", "updated_at").
		Updates(a)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFoundError(assignmentEntity, a.ID)
	}
	return nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&assignment.Assignment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFoundError(assignmentEntity, id)
	}
	return nil
}

func (r *AssignmentRepository) AppendSubmission(ctx context.Context, id uuid.UUID, submissionID uuid.UUID) error {
	res := r.db.WithContext(ctx).Exec(
		"UPDATE assignments SET submissions = array_append(submissions, ?::uuid), updated_at = NOW() WHERE id = ?",
		submissionID, id,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFoundError(assignmentEntity, id)
	}
	return nil
}
