package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	"github.com/tarpaulin/tarpaulin/pkg/domain/course"
	"github.com/tarpaulin/tarpaulin/pkg/infra/database/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const courseEntity = "Course"

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) course.Repository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) Save(ctx context.Context, c *course.Course) error {
	if c.Students == nil {
		c.Students = types.UUIDArray{}
	}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*course.Course, error) {
	entity := new(course.Course)
	if err := r.db.WithContext(ctx).First(entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError(courseEntity, id)
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return entity, nil
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&course.Course{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *CourseRepository) List(ctx context.Context, offset, limit int) ([]course.Course, error) {
	var courses []course.Course
	err := r.db.WithContext(ctx).
		Order("created_at, id").
		Offset(offset).
		Limit(limit).
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// Update writes the descriptive fields only. The student list is changed
// through UpdateEnrollment.
func (r *CourseRepository) Update(ctx context.Context, c *course.Course) error {
	res := r.db.WithContext(ctx).
		Model(c).
		Select("subject", "number", "title", "term", "instructor_id", "updated_at").
		Updates(c)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFoundError(courseEntity, c.ID)
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM assignments WHERE course_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&course.Course{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.NewNotFoundError(courseEntity, id)
		}
		return nil
	})
}

// UpdateEnrollment removes then adds students under a row lock. Adding an
// already enrolled student is a no-op.
func (r *CourseRepository) UpdateEnrollment(ctx context.Context, id uuid.UUID, add, remove []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entity := new(course.Course)
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(entity, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError(courseEntity, id)
			}
			return err
		}

		drop := types.UUIDArray(remove)
		students := make(types.UUIDArray, 0, len(entity.Students)+len(add))
		for _, s := range entity.Students {
			if !drop.Contains(s) {
				students = append(students, s)
			}
		}
		for _, s := range add {
			if !students.Contains(s) {
				students = append(students, s)
			}
		}

		return tx.Model(entity).UpdateColumn("students", students).Error
	})
}

func (r *CourseRepository) ListIDsByInstructor(ctx context.Context, instructorID uuid.UUID) ([]uuid.UUID, error) {
	return r.pluckIDs(ctx, "instructor_id = ?", instructorID)
}

func (r *CourseRepository) ListIDsByStudent(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	return r.pluckIDs(ctx, "? = ANY(students)", studentID)
}

func (r *CourseRepository) pluckIDs(ctx context.Context, query string, arg uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	err := r.db.WithContext(ctx).
		Model(&course.Course{}).
		Where(query, arg).
		Order("created_at").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list course ids: %w", err)
	}
	return ids, nil
}
