package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"petcare-service/internal/model"
)

// ExpenseService tracks owner-recorded pet expenses.
type ExpenseService struct {
	expenses ExpenseStore
	pets     PetStore
	logger   *zap.Logger
}

func NewExpenseService(expenses ExpenseStore, pets PetStore, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{expenses: expenses, pets: pets, logger: logger}
}

// ExpenseRequest carries the expense form fields.
type ExpenseRequest struct {
	PetID    uint
	Category string
	Amount   float64
	SpentOn  time.Time
	Notes    string
}

// Create records an expense against one of the caller's pets.
func (s *ExpenseService) Create(ctx context.Context, caller Caller, req ExpenseRequest) (*model.Expense, error) {
	if err := Authorize(caller, model.RolePetOwner); err != nil {
		return nil, err
	}
	if req.PetID == 0 || req.Amount <= 0 {
		return nil, fmt.Errorf("%w: pet_id and a positive amount are required", ErrValidation)
	}
	if req.SpentOn.IsZero() {
		return nil, fmt.Errorf("%w: spent_on is required", ErrValidation)
	}

	pet, err := s.pets.GetByID(ctx, req.PetID)
	if err != nil {
		return nil, err
	}
	if pet.OwnerID != caller.OwnerID {
		return nil, ErrForbidden
	}

	exp := &model.Expense{
		PetID:    pet.ID,
		OwnerID:  pet.OwnerID,
		Category: req.Category,
		Amount:   req.Amount,
		SpentOn:  req.SpentOn,
		Notes:    req.Notes,
	}
	if err := s.expenses.Create(ctx, exp); err != nil {
		return nil, err
	}

	s.logger.Info("Expense recorded",
		zap.Uint("expense_id", exp.ID),
		zap.Uint("pet_id", exp.PetID),
		zap.Float64("amount", exp.Amount),
	)

	return exp, nil
}

// List returns the expenses visible to the caller: owners their own,
// admins all of them.
func (s *ExpenseService) List(ctx context.Context, caller Caller) ([]model.Expense, error) {
	if err := Authorize(caller, model.RoleAdmin, model.RolePetOwner); err != nil {
		return nil, err
	}
	return s.expenses.List(ctx, caller)
}
