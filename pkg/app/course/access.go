package course

import (
	"context"

	"github.com/google/uuid"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	domainCourse "github.com/tarpaulin/tarpaulin/pkg/domain/course"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
)

// RequireStaff loads the course and checks that the caller is an admin or the
// instructor teaching it.
func RequireStaff(ctx context.Context, repo domainCourse.Repository, caller *identity.Identity, courseID uuid.UUID) (*domainCourse.Course, error) {
	if !caller.HasRole(identity.RoleAdmin, identity.RoleInstructor) {
		return nil, domain.ErrForbidden
	}
	c, err := repo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && !c.IsInstructor(caller.ID) {
		return nil, domain.ErrForbidden
	}
	return c, nil
}
