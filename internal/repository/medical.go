package repository

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"petcare-service/internal/model"
	"petcare-service/internal/service"
)

// MedicalRepository is the gorm-backed service.MedicalStore.
type MedicalRepository struct {
	db *gorm.DB
}

func NewMedicalRepository(db *gorm.DB) *MedicalRepository {
	return &MedicalRepository{db: db}
}

func (r *MedicalRepository) CreateVaccination(ctx context.Context, v *model.Vaccination) error {
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return translate("create vaccination", err)
	}
	return nil
}

func (r *MedicalRepository) CreateMedication(ctx context.Context, m *model.Medication) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translate("create medication", err)
	}
	return nil
}

// Owner scoping goes through the pets join since medical rows only carry
// pet_id and vet_id.
func (r *MedicalRepository) ListVaccinations(ctx context.Context, caller service.Caller) ([]model.Vaccination, error) {
	var rows []model.Vaccination
	result := r.db.WithContext(ctx).
		Preload("Pet").
		Joins("JOIN pets ON pets.id = vaccinations.pet_id").
		Scopes(forCaller(caller, "pets.owner_id", "vaccinations.vet_id")).
		Order("vaccinations.date_given DESC").
		Find(&rows)
	if result.Error != nil {
		return nil, translate("list vaccinations", result.Error)
	}
	return rows, nil
}

func (r *MedicalRepository) ListMedications(ctx context.Context, caller service.Caller) ([]model.Medication, error) {
	var rows []model.Medication
	result := r.db.WithContext(ctx).
		Preload("Pet").
		Joins("JOIN pets ON pets.id = medications.pet_id").
		Scopes(forCaller(caller, "pets.owner_id", "medications.vet_id")).
		Order("medications.start_date DESC").
		Find(&rows)
	if result.Error != nil {
		return nil, translate("list medications", result.Error)
	}
	return rows, nil
}

func (r *MedicalRepository) ListVaccinationsByPet(ctx context.Context, petID uint) ([]model.Vaccination, error) {
	var rows []model.Vaccination
	result := r.db.WithContext(ctx).
		Where("pet_id = ?", petID).
		Order("date_given DESC").
		Find(&rows)
	if result.Error != nil {
		return nil, translate("list pet vaccinations", result.Error)
	}
	return rows, nil
}

func (r *MedicalRepository) ListMedicationsByPet(ctx context.Context, petID uint) ([]model.Medication, error) {
	var rows []model.Medication
	result := r.db.WithContext(ctx).
		Where("pet_id = ?", petID).
		Order("start_date DESC").
		Find(&rows)
	if result.Error != nil {
		return nil, translate("list pet medications", result.Error)
	}
	return rows, nil
}

// RemindersDue merges vaccination boosters coming due and medication
// courses ending inside [from, to]. A vaccination with no recorded next
// due date is assumed due one year after the shot.
func (r *MedicalRepository) RemindersDue(ctx context.Context, caller service.Caller, from, to time.Time) ([]model.Reminder, error) {
	var reminders []model.Reminder

	var vaccinations []model.Reminder
	result := r.db.WithContext(ctx).
		Table("vaccinations").
		Select(`'Vaccination' AS type,
vaccinations.vaccine_name AS details,
pets.name AS pet_name,
COALESCE(vaccinations.next_due_date, vaccinations.date_given + INTERVAL '1 year') AS due_on`).
		Joins("JOIN pets ON pets.id = vaccinations.pet_id").
		Scopes(forCaller(caller, "pets.owner_id", "vaccinations.vet_id")).
		Where("COALESCE(vaccinations.next_due_date, vaccinations.date_given + INTERVAL '1 year') BETWEEN ? AND ?", from, to).
		Scan(&vaccinations)
	if result.Error != nil {
		return nil, translate("list vaccination reminders", result.Error)
	}
	reminders = append(reminders, vaccinations...)

	var medications []model.Reminder
	result = r.db.WithContext(ctx).
		Table("medications").
		Select(`'Medication' AS type,
medications.medicine_name AS details,
pets.name AS pet_name,
medications.end_date AS due_on`).
		Joins("JOIN pets ON pets.id = medications.pet_id").
		Scopes(forCaller(caller, "pets.owner_id", "medications.vet_id")).
		Where("medications.end_date BETWEEN ? AND ?", from, to).
		Scan(&medications)
	if result.Error != nil {
		return nil, translate("list medication reminders", result.Error)
	}
	reminders = append(reminders, medications...)

	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].DueOn.Before(reminders[j].DueOn)
	})
	return reminders, nil
}

func (r *MedicalRepository) CountAll(ctx context.Context) (int64, error) {
	var vaccinations, medications int64
	if err := r.db.WithContext(ctx).Model(&model.Vaccination{}).Count(&vaccinations).Error; err != nil {
		return 0, translate("count vaccinations", err)
	}
	if err := r.db.WithContext(ctx).Model(&model.Medication{}).Count(&medications).Error; err != nil {
		return 0, translate("count medications", err)
	}
	return vaccinations + medications, nil
}
