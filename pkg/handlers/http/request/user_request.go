package request

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/tarpaulin/tarpaulin/pkg/domain/identity"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

type CreateUserRequest struct {
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Password string        `json:"password"`
	Role     identity.Role `json:"role,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("a valid email is required")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if len(r.Password) > maxPasswordBytes {
		return fmt.Errorf("password must be at most %d bytes", maxPasswordBytes)
	}
	if r.Role == "" {
		r.Role = identity.RoleStudent
	}
	if !r.Role.Valid() {
		return fmt.Errorf("role must be one of admin, instructor or student")
	}
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return fmt.Errorf("email and password are required")
	}
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return nil
}
