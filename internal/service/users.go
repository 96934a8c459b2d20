package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"petcare-service/internal/model"
)

// UserAdminService is the admin-only user management surface.
type UserAdminService struct {
	users  UserStore
	logger *zap.Logger
}

func NewUserAdminService(users UserStore, logger *zap.Logger) *UserAdminService {
	return &UserAdminService{users: users, logger: logger}
}

// List returns every active user joined with its role profile.
func (s *UserAdminService) List(ctx context.Context, caller Caller) ([]model.UserAccount, error) {
	if err := Authorize(caller, model.RoleAdmin); err != nil {
		return nil, err
	}
	return s.users.ListActive(ctx)
}

// CreateUserRequest carries the admin user-creation form.
type CreateUserRequest struct {
	FullName       string
	Email          string
	Password       string
	Role           model.UserRole
	Status         model.UserStatus
	Phone          string
	Address        string
	Specialization string
}

// Create adds a user of any role, with its role profile when applicable.
func (s *UserAdminService) Create(ctx context.Context, caller Caller, req CreateUserRequest) (*model.User, error) {
	if err := Authorize(caller, model.RoleAdmin); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: full_name, email and password are required", ErrValidation)
	}
	switch req.Role {
	case model.RoleAdmin, model.RoleVeterinarian, model.RolePetOwner:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}
	if req.Status == "" {
		req.Status = model.UserStatusActive
	}

	if existing, err := s.users.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.TrimSpace(req.Email),
		Password: string(hashed),
		Role:     req.Role,
		Status:   req.Status,
	}

	var owner *model.Owner
	var vet *model.Veterinarian
	switch req.Role {
	case model.RolePetOwner:
		owner = &model.Owner{Phone: req.Phone, Address: req.Address}
	case model.RoleVeterinarian:
		vet = &model.Veterinarian{Specialization: req.Specialization, Phone: req.Phone, ClinicAddress: req.Address}
	}

	if err := s.users.CreateWithProfile(ctx, user, owner, vet); err != nil {
		return nil, err
	}

	s.logger.Info("User created by admin",
		zap.Uint("user_id", user.ID),
		zap.String("role", string(user.Role)),
		zap.Uint("admin_id", caller.UserID),
	)

	return user, nil
}

// UpdateUserRequest carries the admin user-edit form. Password is only
// changed when provided.
type UpdateUserRequest struct {
	FullName       string
	Role           model.UserRole
	Status         model.UserStatus
	Phone          string
	Address        string
	Specialization string
	Password       string
}

// Update edits a user and upserts the role profile matching its role.
func (s *UserAdminService) Update(ctx context.Context, caller Caller, userID uint, req UpdateUserRequest) error {
	if err := Authorize(caller, model.RoleAdmin); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if strings.TrimSpace(req.FullName) != "" {
		user.FullName = strings.TrimSpace(req.FullName)
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Status != "" {
		user.Status = req.Status
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	switch user.Role {
	case model.RolePetOwner:
		return s.users.UpsertOwner(ctx, &model.Owner{
			UserID:  user.ID,
			Phone:   req.Phone,
			Address: req.Address,
		})
	case model.RoleVeterinarian:
		return s.users.UpsertVet(ctx, &model.Veterinarian{
			UserID:         user.ID,
			Phone:          req.Phone,
			ClinicAddress:  req.Address,
			Specialization: req.Specialization,
		})
	}
	return nil
}

// SoftDelete marks the user Deleted. Historical rows keep referencing it.
func (s *UserAdminService) SoftDelete(ctx context.Context, caller Caller, userID uint) error {
	if err := Authorize(caller, model.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if err := s.users.SetStatus(ctx, userID, model.UserStatusDeleted); err != nil {
		return err
	}
	s.logger.Info("User soft-deleted",
		zap.Uint("user_id", userID),
		zap.Uint("admin_id", caller.UserID),
	)
	return nil
}

// Search finds active users of a role by name, for form autocompletion.
// Admins use it to attach owners to pets; owners use it to pick a vet
// when booking.
func (s *UserAdminService) Search(ctx context.Context, caller Caller, role model.UserRole, query string) ([]model.UserAccount, error) {
	if err := Authorize(caller, model.RoleAdmin, model.RolePetOwner); err != nil {
		return nil, err
	}
	// Owners may only look up veterinarians.
	if caller.IsOwner() && role != model.RoleVeterinarian {
		return nil, ErrForbidden
	}
	return s.users.Search(ctx, role, query, 10)
}
