package repository

import (
	"context"

	"gorm.io/gorm"

	"petcare-service/internal/model"
	"petcare-service/internal/service"
)

// PetRepository is the gorm-backed service.PetStore.
type PetRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) *PetRepository {
	return &PetRepository{db: db}
}

func (r *PetRepository) Create(ctx context.Context, p *model.Pet) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return translate("create pet", err)
	}
	return nil
}

func (r *PetRepository) GetByID(ctx context.Context, id uint) (*model.Pet, error) {
	var pet model.Pet
	result := r.db.WithContext(ctx).First(&pet, id)
	if result.Error != nil {
		return nil, translate("get pet", result.Error)
	}
	return &pet, nil
}

// List returns pets visible to the caller. Vets never reach this path,
// so the vet arm of the scope is unused here.
func (r *PetRepository) List(ctx context.Context, caller service.Caller) ([]model.Pet, error) {
	var pets []model.Pet
	result := r.db.WithContext(ctx).
		Scopes(forCaller(caller, "pets.owner_id", "pets.owner_id")).
		Order("pets.name ASC").
		Find(&pets)
	if result.Error != nil {
		return nil, translate("list pets", result.Error)
	}
	return pets, nil
}

func (r *PetRepository) Update(ctx context.Context, p *model.Pet) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return translate("update pet", err)
	}
	return nil
}

func (r *PetRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Pet{}, id)
	if result.Error != nil {
		return translate("delete pet", result.Error)
	}
	if result.RowsAffected == 0 {
		return service.ErrNotFound
	}
	return nil
}

// HasDependents checks every table that references pets. A pet with any
// dependent row cannot be deleted.
func (r *PetRepository) HasDependents(ctx context.Context, petID uint) (bool, error) {
	tables := []interface{}{
		&model.Appointment{},
		&model.Vaccination{},
		&model.Medication{},
		&model.Expense{},
	}
	for _, table := range tables {
		var count int64
		result := r.db.WithContext(ctx).Model(table).Where("pet_id = ?", petID).Count(&count)
		if result.Error != nil {
			return false, translate("count pet dependents", result.Error)
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (r *PetRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Pet{}).Count(&count)
	if result.Error != nil {
		return 0, translate("count pets", result.Error)
	}
	return count, nil
}
