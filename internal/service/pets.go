package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"petcare-service/internal/model"
)

// PetService handles pet records. Owners manage their own pets, admins
// manage all of them.
type PetService struct {
	pets   PetStore
	logger *zap.Logger
}

func NewPetService(pets PetStore, logger *zap.Logger) *PetService {
	return &PetService{pets: pets, logger: logger}
}

// List returns the pets visible to the caller.
func (s *PetService) List(ctx context.Context, caller Caller) ([]model.Pet, error) {
	if err := Authorize(caller, model.RoleAdmin, model.RolePetOwner); err != nil {
		return nil, err
	}
	return s.pets.List(ctx, caller)
}

// Get returns one pet, enforcing the visibility rule before anything else.
func (s *PetService) Get(ctx context.Context, caller Caller, petID uint) (*model.Pet, error) {
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if !caller.CanSeePet(pet) {
		return nil, ErrForbidden
	}
	return pet, nil
}

// PetRequest carries the pet create/update form fields.
type PetRequest struct {
	OwnerID        uint
	Name           string
	Breed          string
	Age            int
	Gender         string
	MedicalHistory string
	Image          string
}

// Create adds a pet. Owners always create for themselves; only admins may
// set an arbitrary owner.
func (s *PetService) Create(ctx context.Context, caller Caller, req PetRequest) (*model.Pet, error) {
	if err := Authorize(caller, model.RoleAdmin, model.RolePetOwner); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	ownerID := req.OwnerID
	if caller.IsOwner() {
		ownerID = caller.OwnerID
	}
	if ownerID == 0 {
		return nil, fmt.Errorf("%w: owner_id is required", ErrValidation)
	}

	pet := &model.Pet{
		OwnerID:        ownerID,
		Name:           strings.TrimSpace(req.Name),
		Breed:          req.Breed,
		Age:            req.Age,
		Gender:         req.Gender,
		MedicalHistory: req.MedicalHistory,
		Image:          req.Image,
	}
	if err := s.pets.Create(ctx, pet); err != nil {
		return nil, err
	}

	s.logger.Info("Pet added",
		zap.Uint("pet_id", pet.ID),
		zap.Uint("owner_id", pet.OwnerID),
		zap.String("name", pet.Name),
	)

	return pet, nil
}

// Update edits a pet. Owners may only touch their own pets and cannot
// move a pet to another owner.
func (s *PetService) Update(ctx context.Context, caller Caller, petID uint, req PetRequest) (*model.Pet, error) {
	if err := Authorize(caller, model.RoleAdmin, model.RolePetOwner); err != nil {
		return nil, err
	}

	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if caller.IsOwner() && pet.OwnerID != caller.OwnerID {
		return nil, ErrForbidden
	}

	if strings.TrimSpace(req.Name) != "" {
		pet.Name = strings.TrimSpace(req.Name)
	}
	pet.Breed = req.Breed
	pet.Age = req.Age
	pet.Gender = req.Gender
	pet.MedicalHistory = req.MedicalHistory
	if req.Image != "" {
		pet.Image = req.Image
	}
	if caller.IsAdmin() && req.OwnerID != 0 {
		pet.OwnerID = req.OwnerID
	}

	if err := s.pets.Update(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

// Delete removes a pet. Deletion is blocked while appointments, medical
// records or expenses still reference it, so history stays auditable.
func (s *PetService) Delete(ctx context.Context, caller Caller, petID uint) error {
	if err := Authorize(caller, model.RoleAdmin); err != nil {
		return err
	}

	if _, err := s.pets.GetByID(ctx, petID); err != nil {
		return err
	}

	inUse, err := s.pets.HasDependents(ctx, petID)
	if err != nil {
		return err
	}
	if inUse {
		return ErrPetInUse
	}

	if err := s.pets.Delete(ctx, petID); err != nil {
		return err
	}
	s.logger.Info("Pet deleted", zap.Uint("pet_id", petID), zap.Uint("admin_id", caller.UserID))
	return nil
}
