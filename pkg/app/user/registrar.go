package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
	domainUser "github.com/tarpaulin/tarpaulin/pkg/domain/user"
	"github.com/tarpaulin/tarpaulin/pkg/handlers/http/request"
	"github.com/tarpaulin/tarpaulin/pkg/infra/auth/jwt"
	"github.com/tarpaulin/tarpaulin/pkg/infra/hashing"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Registration struct {
	User  *domainUser.User
	Token string
}

type Registrar interface {
	Register(ctx context.Context, caller *identity.Identity, req *request.CreateUserRequest) (*Registration, error)
}

type registrar struct {
	logger     *logrus.Logger
	repo       domainUser.Repository
	hasher     hashing.Hasher
	jwtManager jwt.Manager
}

func NewRegistrar(logger *logrus.Logger, repo domainUser.Repository, hasher hashing.Hasher, jwtManager jwt.Manager) Registrar {
	return &registrar{
		logger:     logger,
		repo:       repo,
		hasher:     hasher,
		jwtManager: jwtManager,
	}
}

// Register creates a user. Privileged roles can only be granted by an admin.
func (r *registrar) Register(ctx context.Context, caller *identity.Identity, req *request.CreateUserRequest) (*Registration, error) {
	if req.Role == identity.RoleAdmin || req.Role == identity.RoleInstructor {
		if caller == nil {
			return nil, domain.ErrUnauthorized
		}
		if !caller.IsAdmin() {
			return nil, domain.ErrForbidden
		}
	}

	existing, err := r.repo.GetByEmail(ctx, req.Email)
	if err != nil && !domain.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrAlreadyExists
	}

	hash, err := r.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	u := &domainUser.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     req.Role,
	}
	if err := r.repo.Save(ctx, u); err != nil {
		r.logger.WithError(err).Error("failed to save user")
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	token, err := r.jwtManager.CreateToken(u.Identity())
	if err != nil {
		return nil, err
	}
	return &Registration{User: u, Token: token}, nil
}
