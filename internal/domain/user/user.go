// Package user provides user domain models and behaviors.
package user

import (
	"context"
	"errors"

	"taborra-server/whatsapp-bridge/internal/utils/platformerrors"
)

// DefaultLevel is the tier assigned to users on first contact.
const DefaultLevel = 1

// User models a customer identified by phone number.
type User struct {
	ID       uint
	FullName string
	Phone    string
	Level    int
}

// Repository defines storage operations for users.
type Repository interface {
	// FindByPhone returns the user for the phone number or nil when absent.
	FindByPhone(ctx context.Context, phone string) (*User, error)
	// CreateIfAbsent inserts the user unless the phone is already registered
	// and returns the persisted row either way.
	CreateIfAbsent(ctx context.Context, usr *User) (*User, error)
}

// ErrInvalidIdentity indicates a missing phone number on the inbound record.
var ErrInvalidIdentity = errors.New("invalid identity: phone is required")

// Service persists and resolves users from inbound message records.
type Service struct {
	repo Repository
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// EnsureUser returns the registered user for the phone number, creating it
// with the default level on first contact. Two concurrent first messages from
// the same phone both converge on the single persisted row.
func (s *Service) EnsureUser(ctx context.Context, fullName, phone string) (*User, error) {
	if phone == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"phone is required", ErrInvalidIdentity, "")
	}

	existing, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up user")
	}
	if existing != nil {
		return existing, nil
	}

	created, err := s.repo.CreateIfAbsent(ctx, &User{
		FullName: fullName,
		Phone:    phone,
		Level:    DefaultLevel,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to register user")
	}
	return created, nil
}
