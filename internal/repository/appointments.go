package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"petcare-service/internal/model"
	"petcare-service/internal/service"
)

// AppointmentRepository is the gorm-backed service.AppointmentStore.
type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// bookingLockClass namespaces the per-vet advisory lock keys so they
// cannot collide with other advisory-lock users of the same database.
const bookingLockClass = int64(0x70657463) // "petc"

func bookingLockKey(vetID uint) int64 {
	return bookingLockClass<<32 | int64(uint32(vetID))
}

// CreateBooking inserts the appointment unless a Pending or Confirmed
// appointment of the same vet falls within buffer of the slot. Bookings
// for one vet are serialized with a transaction-scoped advisory lock:
// row locks cannot serialize inserts into an empty window, since two
// concurrent transactions would each find nothing to lock and both
// commit. The partial unique index on (vet_id, appointment_date)
// backstops the exact-time case against writers outside this path.
func (r *AppointmentRepository) CreateBooking(ctx context.Context, a *model.Appointment, buffer time.Duration) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", bookingLockKey(a.VetID)).Error; err != nil {
			return err
		}
		var holding []model.Appointment
		result := tx.
			Where("vet_id = ?", a.VetID).
			Where("appointment_date BETWEEN ? AND ?", a.AppointmentDate.Add(-buffer), a.AppointmentDate.Add(buffer)).
			Where("status IN ?", model.BlockingStatuses).
			Find(&holding)
		if result.Error != nil {
			return result.Error
		}
		if len(holding) > 0 {
			return &service.ConflictError{VetID: a.VetID, At: holding[0].AppointmentDate}
		}
		return tx.Create(a).Error
	})
	if err != nil {
		var conflict *service.ConflictError
		if errors.As(err, &conflict) {
			return conflict
		}
		if isSlotTaken(err) {
			return &service.ConflictError{VetID: a.VetID, At: a.AppointmentDate}
		}
		return translate("create booking", err)
	}
	return nil
}

// isSlotTaken reports whether an insert lost the exact-time race and hit
// the appointment slot index.
func isSlotTaken(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uniq_vet_slot"
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uint) (*model.Appointment, error) {
	var appt model.Appointment
	result := r.db.WithContext(ctx).Preload("Pet").Preload("Vet").First(&appt, id)
	if result.Error != nil {
		return nil, translate("get appointment", result.Error)
	}
	return &appt, nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id uint, status model.AppointmentStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return translate("update appointment status", result.Error)
	}
	if result.RowsAffected == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (r *AppointmentRepository) List(ctx context.Context, caller service.Caller) ([]model.Appointment, error) {
	var appts []model.Appointment
	result := r.db.WithContext(ctx).
		Preload("Pet").
		Preload("Vet").
		Scopes(forCaller(caller, "appointments.owner_id", "appointments.vet_id")).
		Order("appointments.appointment_date DESC").
		Find(&appts)
	if result.Error != nil {
		return nil, translate("list appointments", result.Error)
	}
	return appts, nil
}

func (r *AppointmentRepository) ListBetween(ctx context.Context, caller service.Caller, from, to time.Time, statuses []model.AppointmentStatus) ([]model.Appointment, error) {
	var appts []model.Appointment
	query := r.db.WithContext(ctx).
		Preload("Pet").
		Preload("Vet").
		Scopes(forCaller(caller, "appointments.owner_id", "appointments.vet_id")).
		Where("appointments.appointment_date >= ? AND appointments.appointment_date < ?", from, to)
	if len(statuses) > 0 {
		query = query.Where("appointments.status IN ?", statuses)
	}
	result := query.Order("appointments.appointment_date ASC").Find(&appts)
	if result.Error != nil {
		return nil, translate("list appointments between", result.Error)
	}
	return appts, nil
}

func (r *AppointmentRepository) CompleteConfirmed(ctx context.Context, petID, vetID uint, from, to time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("pet_id = ? AND vet_id = ?", petID, vetID).
		Where("appointment_date >= ? AND appointment_date < ?", from, to).
		Where("status = ?", model.StatusConfirmed).
		Update("status", model.StatusCompleted)
	if result.Error != nil {
		return 0, translate("complete confirmed appointments", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *AppointmentRepository) CountUpcoming(ctx context.Context, from time.Time) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("appointment_date >= ?", from).
		Where("status IN ?", model.BlockingStatuses).
		Count(&count)
	if result.Error != nil {
		return 0, translate("count upcoming appointments", result.Error)
	}
	return count, nil
}
