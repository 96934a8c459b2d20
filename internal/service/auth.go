package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"petcare-service/internal/model"
)

// AuthService handles registration, login and self-service account
// operations. Token issuing stays in the handler; this layer only decides
// whether the credentials and the account state allow it.
type AuthService struct {
	users  UserStore
	logger *zap.Logger
}

func NewAuthService(users UserStore, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, logger: logger}
}

// RegisterRequest carries the self-registration form fields.
type RegisterRequest struct {
	FullName       string
	Email          string
	Password       string
	Role           model.UserRole
	Phone          string
	Address        string
	Specialization string
}

// Register creates a user plus its role profile in one transaction.
// Self-registration only accepts Pet Owner and Veterinarian; admins are
// seeded or created through user management.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: full_name, email and password are required", ErrValidation)
	}
	if req.Role != model.RolePetOwner && req.Role != model.RoleVeterinarian {
		return nil, fmt.Errorf("%w: role must be %q or %q", ErrValidation, model.RolePetOwner, model.RoleVeterinarian)
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
		Status:   model.UserStatusActive,
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

	s.logger.Info("User registered",
		zap.Uint("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)

	return user, nil
}

// Login checks the credentials and returns the user when the account is
// active. Deleted and inactive accounts fail the same way as a bad
// password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Status != model.UserStatusActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Profile returns the caller's user row merged with the role profile.
func (s *AuthService) Profile(ctx context.Context, caller Caller) (*model.UserAccount, error) {
	user, err := s.users.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	account := &model.UserAccount{
		UserID:   user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role,
		Status:   user.Status,
	}

	switch user.Role {
	case model.RolePetOwner:
		if owner, err := s.users.OwnerByUserID(ctx, user.ID); err == nil {
			account.RelatedID = owner.ID
			account.Phone = owner.Phone
			account.Address = owner.Address
		}
	case model.RoleVeterinarian:
		if vet, err := s.users.VetByUserID(ctx, user.ID); err == nil {
			account.RelatedID = vet.ID
			account.Phone = vet.Phone
			account.Address = vet.ClinicAddress
			account.Specialization = vet.Specialization
		}
	}

	return account, nil
}

// UpdateProfileRequest carries the editable profile fields.
type UpdateProfileRequest struct {
	FullName       string
	Phone          string
	Address        string
	Specialization string
}

// UpdateProfile updates the caller's name and role-specific contact
// details, creating the profile row when it is missing.
func (s *AuthService) UpdateProfile(ctx context.Context, caller Caller, req UpdateProfileRequest) error {
	if strings.TrimSpace(req.FullName) == "" {
		return fmt.Errorf("%w: full_name is required", ErrValidation)
	}

	user, err := s.users.GetByID(ctx, caller.UserID)
	if err != nil {
		return err
	}
	user.FullName = strings.TrimSpace(req.FullName)
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	switch caller.Role {
	case model.RolePetOwner:
		return s.users.UpsertOwner(ctx, &model.Owner{
			UserID:  caller.UserID,
			Phone:   req.Phone,
			Address: req.Address,
		})
	case model.RoleVeterinarian:
		return s.users.UpsertVet(ctx, &model.Veterinarian{
			UserID:         caller.UserID,
			Phone:          req.Phone,
			ClinicAddress:  req.Address,
			Specialization: req.Specialization,
		})
	}
	return nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, caller Caller, current, next string) error {
	if next == "" {
		return fmt.Errorf("%w: new password is required", ErrValidation)
	}

	user, err := s.users.GetByID(ctx, caller.UserID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hashed)
	return s.users.Update(ctx, user)
}

// DeleteAccount soft-deletes the caller's own account. The row stays for
// referential history; the status flag excludes it from active queries.
func (s *AuthService) DeleteAccount(ctx context.Context, caller Caller) error {
	if err := s.users.SetStatus(ctx, caller.UserID, model.UserStatusDeleted); err != nil {
		return err
	}
	s.logger.Info("Account soft-deleted", zap.Uint("user_id", caller.UserID))
	return nil
}
