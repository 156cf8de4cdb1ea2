package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "simple-crud-api/internal/domain/user"
	pkgerrors "simple-crud-api/pkg/errors"
	"simple-crud-api/pkg/logger"
)

// Repository defines the interface for user data access operations.
// Implementations must run each method atomically with respect to the others.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)                        // Insert a user, assigning its ID
	GetByID(ctx context.Context, id string) (*domain.User, error)                            // Retrieve user by ID
	Update(ctx context.Context, id string, apply func(u *domain.User)) (*domain.User, error) // Read-modify-write a user
	Delete(ctx context.Context, id string) (*domain.User, error)                             // Remove and return a user
	List(ctx context.Context) ([]domain.User, error)                                         // All users in insertion order
}

// Usecase implements the business logic for user management operations.
type Usecase struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
	now      func() time.Time
}

var _ UserUsecase = (*Usecase)(nil)

// New creates a new instance of Usecase with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Usecase {
	return &Usecase{
		repo:     r,
		log:      log,
		validate: validator.New(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// formatValidationError reduces validator errors to the first failing field.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		e := validationErrors[0]
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			return pkgerrors.NewValidationError(field, "is required")
		default:
			return pkgerrors.NewValidationError(field, "is invalid")
		}
	}
	return err
}

// CreateUser validates the request and stores a new user with matching created/updated stamps.
func (uc *Usecase) CreateUser(ctx context.Context, in CreateUserRequest) (*User, error) {
	log := logger.WithContext(ctx, uc.log)

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("create user validation failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	now := uc.now()
	u, err := uc.repo.Create(ctx, &domain.User{
		Name:      in.Name,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user created", zap.String("id", u.ID))
	return toDTO(u), nil
}

// UpdateUser applies the fields present in the request and re-stamps UpdatedAt.
func (uc *Usecase) UpdateUser(ctx context.Context, in UpdateUserRequest) (*User, error) {
	log := logger.WithContext(ctx, uc.log)

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("update user validation failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	now := uc.now()
	u, err := uc.repo.Update(ctx, in.ID, func(u *domain.User) {
		if in.Name != nil {
			u.Name = *in.Name
		}
		if in.Email != nil {
			u.Email = *in.Email
		}
		u.UpdatedAt = now
	})
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			log.Warn("user not found for update", zap.String("id", in.ID))
			return nil, err
		}
		log.Error("failed to update user", zap.String("id", in.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	log.Info("user updated", zap.String("id", u.ID))
	return toDTO(u), nil
}

// DeleteUser removes a user and returns the removed record.
func (uc *Usecase) DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)

	u, err := uc.repo.Delete(ctx, in.ID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			log.Warn("user not found for delete", zap.String("id", in.ID))
			return nil, err
		}
		log.Error("failed to delete user", zap.String("id", in.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	log.Info("user deleted", zap.String("id", u.ID))
	return &DeleteUserResponse{User: *toDTO(u)}, nil
}

// GetUser retrieves a user by ID.
func (uc *Usecase) GetUser(ctx context.Context, in GetUserRequest) (*User, error) {
	log := logger.WithContext(ctx, uc.log)

	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			log.Debug("user not found", zap.String("id", in.ID))
			return nil, err
		}
		log.Error("failed to get user", zap.String("id", in.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	log.Info("user retrieved", zap.String("id", u.ID))
	return toDTO(u), nil
}

// ListUsers returns every user together with the count.
func (uc *Usecase) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	log := logger.WithContext(ctx, uc.log)

	domainUsers, err := uc.repo.List(ctx)
	if err != nil {
		log.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]User, len(domainUsers))
	for i := range domainUsers {
		users[i] = *toDTO(&domainUsers[i])
	}

	log.Info("users listed", zap.Int("count", len(users)))
	return &ListUsersResponse{Users: users, Count: len(users)}, nil
}

func toDTO(u *domain.User) *User {
	return &User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
