package repository

import (
	"context"

	"gorm.io/gorm"

	"petcare-service/internal/model"
	"petcare-service/internal/service"
)

// ExpenseRepository is the gorm-backed service.ExpenseStore.
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *model.Expense) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return translate("create expense", err)
	}
	return nil
}

// List returns expenses visible to the caller. Vets have no expense
// view, so only the admin and owner arms of the scope apply.
func (r *ExpenseRepository) List(ctx context.Context, caller service.Caller) ([]model.Expense, error) {
	var expenses []model.Expense
	result := r.db.WithContext(ctx).
		Preload("Pet").
		Scopes(forCaller(caller, "expenses.owner_id", "expenses.owner_id")).
		Order("expenses.spent_on DESC").
		Find(&expenses)
	if result.Error != nil {
		return nil, translate("list expenses", result.Error)
	}
	return expenses, nil
}
