package repository

import (
	"context"

	"gorm.io/gorm"

	"petcare-service/internal/model"
	"petcare-service/internal/service"
)

// accountColumns joins users with both role-profile tables; exactly one
// side matches per row.
const accountColumns = `
users.id AS user_id,
users.full_name AS full_name,
users.email AS email,
users.role AS role,
users.status AS status,
COALESCE(owners.id, veterinarians.id, 0) AS related_id,
COALESCE(owners.phone, veterinarians.phone, '') AS phone,
COALESCE(owners.address, veterinarians.clinic_address, '') AS address,
COALESCE(veterinarians.specialization, '') AS specialization`

// UserRepository is the gorm-backed service.UserStore.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateWithProfile(ctx context.Context, u *model.User, owner *model.Owner, vet *model.Veterinarian) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		if owner != nil {
			owner.UserID = u.ID
			if err := tx.Create(owner).Error; err != nil {
				return err
			}
		}
		if vet != nil {
			vet.UserID = u.ID
			if err := tx.Create(vet).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return translate("create user", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).Scopes(activeUsers).First(&user, id)
	if result.Error != nil {
		return nil, translate("get user", result.Error)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		return nil, translate("get user by email", result.Error)
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		return translate("update user", err)
	}
	return nil
}

func (r *UserRepository) SetStatus(ctx context.Context, id uint, status model.UserStatus) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return translate("set user status", result.Error)
	}
	if result.RowsAffected == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ListActive(ctx context.Context) ([]model.UserAccount, error) {
	var accounts []model.UserAccount
	result := r.db.WithContext(ctx).
		Table("users").
		Select(accountColumns).
		Joins("LEFT JOIN owners ON owners.user_id = users.id").
		Joins("LEFT JOIN veterinarians ON veterinarians.user_id = users.id").
		Scopes(activeUsers).
		Order("users.full_name ASC").
		Scan(&accounts)
	if result.Error != nil {
		return nil, translate("list users", result.Error)
	}
	return accounts, nil
}

func (r *UserRepository) Search(ctx context.Context, role model.UserRole, query string, limit int) ([]model.UserAccount, error) {
	var accounts []model.UserAccount
	result := r.db.WithContext(ctx).
		Table("users").
		Select(accountColumns).
		Joins("LEFT JOIN owners ON owners.user_id = users.id").
		Joins("LEFT JOIN veterinarians ON veterinarians.user_id = users.id").
		Scopes(activeUsers).
		Where("users.role = ?", role).
		Where("users.full_name ILIKE ?", "%"+query+"%").
		Limit(limit).
		Scan(&accounts)
	if result.Error != nil {
		return nil, translate("search users", result.Error)
	}
	return accounts, nil
}

func (r *UserRepository) OwnerByUserID(ctx context.Context, userID uint) (*model.Owner, error) {
	var owner model.Owner
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&owner)
	if result.Error != nil {
		return nil, translate("get owner profile", result.Error)
	}
	return &owner, nil
}

func (r *UserRepository) VetByUserID(ctx context.Context, userID uint) (*model.Veterinarian, error) {
	var vet model.Veterinarian
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&vet)
	if result.Error != nil {
		return nil, translate("get vet profile", result.Error)
	}
	return &vet, nil
}

func (r *UserRepository) VetByID(ctx context.Context, vetID uint) (*model.Veterinarian, error) {
	var vet model.Veterinarian
	result := r.db.WithContext(ctx).First(&vet, vetID)
	if result.Error != nil {
		return nil, translate("get vet", result.Error)
	}
	return &vet, nil
}

func (r *UserRepository) UpsertOwner(ctx context.Context, o *model.Owner) error {
	var existing model.Owner
	result := r.db.WithContext(ctx).Where("user_id = ?", o.UserID).First(&existing)
	if result.Error == nil {
		existing.Phone = o.Phone
		existing.Address = o.Address
		if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return translate("update owner profile", err)
		}
		return nil
	}
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		return translate("create owner profile", err)
	}
	return nil
}

func (r *UserRepository) UpsertVet(ctx context.Context, v *model.Veterinarian) error {
	var existing model.Veterinarian
	result := r.db.WithContext(ctx).Where("user_id = ?", v.UserID).First(&existing)
	if result.Error == nil {
		existing.Phone = v.Phone
		existing.ClinicAddress = v.ClinicAddress
		existing.Specialization = v.Specialization
		if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return translate("update vet profile", err)
		}
		return nil
	}
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return translate("create vet profile", err)
	}
	return nil
}
