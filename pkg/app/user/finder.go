package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	"github.com/tarpaulin/tarpaulin/pkg/domain/course"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
	domainUser "github.com/tarpaulin/tarpaulin/pkg/domain/user"
)

type Profile struct {
	*domainUser.User
	Courses []uuid.UUID `json:"courses"`
}

type Finder interface {
	Find(ctx context.Context, caller *identity.Identity, id uuid.UUID) (*Profile, error)
}

type finder struct {
	repo       domainUser.Repository
	courseRepo course.Repository
}

func NewFinder(repo domainUser.Repository, courseRepo course.Repository) Finder {
	return &finder{repo: repo, courseRepo: courseRepo}
}

// Find returns a user with the courses they teach or attend. Students can
// only read their own profile.
func (f *finder) Find(ctx context.Context, caller *identity.Identity, id uuid.UUID) (*Profile, error) {
	if !caller.HasRole(identity.RoleAdmin, identity.RoleInstructor) && caller.ID != id {
		return nil, domain.ErrForbidden
	}

	u, err := f.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var courses []uuid.UUID
	switch u.Role {
	case identity.RoleInstructor:
		courses, err = f.courseRepo.ListIDsByInstructor(ctx, u.ID)
	case identity.RoleStudent:
		courses, err = f.courseRepo.ListIDsByStudent(ctx, u.ID)
	}
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []uuid.UUID{}
	}
	return &Profile{User: u, Courses: courses}, nil
}
