package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tarpaulin/tarpaulin/pkg/domain"
	domainUser "github.com/tarpaulin/tarpaulin/pkg/domain/user"
	"github.com/tarpaulin/tarpaulin/pkg/handlers/http/request"
	"github.com/tarpaulin/tarpaulin/pkg/infra/auth/jwt"
	"github.com/tarpaulin/tarpaulin/pkg/infra/hashing"
)

type Authenticator interface {
	Login(ctx context.Context, req *request.LoginRequest) (string, error)
}

type authenticator struct {
	logger     *logrus.Logger
	repo       domainUser.Repository
	hasher     hashing.Hasher
	jwtManager jwt.Manager
}

func NewAuthenticator(logger *logrus.Logger, repo domainUser.Repository, hasher hashing.Hasher, jwtManager jwt.Manager) Authenticator {
	return &authenticator{
		logger:     logger,
		repo:       repo,
		hasher:     hasher,
		jwtManager: jwtManager,
	}
}

func (a *authenticator) Login(ctx context.Context, req *request.LoginRequest) (string, error) {
	u, err := a.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := a.hasher.Compare(u.Password, req.Password); err != nil {
		if errors.Is(err, hashing.ErrMismatch) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	a.logger.WithField("user_id", u.ID).Debug("user logged in")
	return a.jwtManager.CreateToken(u.Identity())
}
