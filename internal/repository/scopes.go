package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"petcare-service/internal/model"
	"petcare-service/internal/service"
)

// forCaller is the shared visibility predicate: admins see everything,
// veterinarians rows carrying their vet id, owners rows carrying their
// owner id. Column names are passed in so the same predicate scopes
// appointments (direct columns) and medical rows (owner via pets join).
func forCaller(c service.Caller, ownerCol, vetCol string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case c.IsAdmin():
			return db
		case c.IsVet():
			return db.Where(vetCol+" = ?", c.VetID)
		default:
			return db.Where(ownerCol+" = ?", c.OwnerID)
		}
	}
}

// activeUsers is the shared soft-delete predicate for the users table.
// Every read path over users goes through it; Deleted rows stay in the
// table for referential history only.
func activeUsers(db *gorm.DB) *gorm.DB {
	return db.Where("users.status = ?", model.UserStatusActive)
}

// translate maps gorm errors onto the service error kinds.
func translate(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return service.ErrNotFound
	}
	return fmt.Errorf("%w: %s: %v", service.ErrStorage, op, err)
}
