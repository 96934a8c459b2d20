package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"petcare-service/internal/model"
	"petcare-service/pkg/config"
)

// MedicalService handles vaccination and medication records and the
// derived reminder view.
type MedicalService struct {
	medical      MedicalStore
	pets         PetStore
	appointments AppointmentStore
	cfg          config.SchedulingConfig
	logger       *zap.Logger
	now          func() time.Time
}

func NewMedicalService(
	medical MedicalStore,
	pets PetStore,
	appointments AppointmentStore,
	cfg config.SchedulingConfig,
	logger *zap.Logger,
) *MedicalService {
	return &MedicalService{
		medical:      medical,
		pets:         pets,
		appointments: appointments,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

// VaccinationRequest carries the vaccination form fields.
type VaccinationRequest struct {
	PetID       uint
	VaccineName string
	DateGiven   time.Time
	NextDueDate *time.Time
	Notes       string
}

// AddVaccination records a vaccine given by the calling veterinarian and
// completes their Confirmed appointments with the pet for today.
func (s *MedicalService) AddVaccination(ctx context.Context, caller Caller, req VaccinationRequest) (*model.Vaccination, error) {
	if err := Authorize(caller, model.RoleVeterinarian); err != nil {
		return nil, err
	}
	if req.PetID == 0 || strings.TrimSpace(req.VaccineName) == "" || req.DateGiven.IsZero() {
		return nil, fmt.Errorf("%w: pet_id, vaccine_name and date_given are required", ErrValidation)
	}
	if _, err := s.pets.GetByID(ctx, req.PetID); err != nil {
		return nil, err
	}

	vac := &model.Vaccination{
		PetID:       req.PetID,
		VetID:       caller.VetID,
		VaccineName: strings.TrimSpace(req.VaccineName),
		DateGiven:   req.DateGiven,
		NextDueDate: req.NextDueDate,
		Notes:       req.Notes,
	}
	if err := s.medical.CreateVaccination(ctx, vac); err != nil {
		return nil, err
	}

	s.completeTodaysVisit(ctx, req.PetID, caller.VetID)

	s.logger.Info("Vaccination recorded",
		zap.Uint("vaccination_id", vac.ID),
		zap.Uint("pet_id", vac.PetID),
		zap.Uint("vet_id", vac.VetID),
		zap.String("vaccine", vac.VaccineName),
	)

	return vac, nil
}

// MedicationRequest carries the medication form fields.
type MedicationRequest struct {
	PetID        uint
	MedicineName string
	Dosage       string
	StartDate    time.Time
	EndDate      *time.Time
	Notes        string
}

// AddMedication records a prescription by the calling veterinarian and
// completes their Confirmed appointments with the pet for today.
func (s *MedicalService) AddMedication(ctx context.Context, caller Caller, req MedicationRequest) (*model.Medication, error) {
	if err := Authorize(caller, model.RoleVeterinarian); err != nil {
		return nil, err
	}
	if req.PetID == 0 || strings.TrimSpace(req.MedicineName) == "" || req.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: pet_id, medicine_name and start_date are required", ErrValidation)
	}
	if _, err := s.pets.GetByID(ctx, req.PetID); err != nil {
		return nil, err
	}

	med := &model.Medication{
		PetID:        req.PetID,
		VetID:        caller.VetID,
		MedicineName: strings.TrimSpace(req.MedicineName),
		Dosage:       req.Dosage,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Notes:        req.Notes,
	}
	if err := s.medical.CreateMedication(ctx, med); err != nil {
		return nil, err
	}

	s.completeTodaysVisit(ctx, req.PetID, caller.VetID)

	s.logger.Info("Medication recorded",
		zap.Uint("medication_id", med.ID),
		zap.Uint("pet_id", med.PetID),
		zap.Uint("vet_id", med.VetID),
		zap.String("medicine", med.MedicineName),
	)

	return med, nil
}

// completeTodaysVisit marks the vet's Confirmed appointments with the pet
// today as Completed. Filing a medical record implies the visit happened.
// Pending appointments are left alone: they were never confirmed, and
// Pending -> Completed is not a legal transition.
func (s *MedicalService) completeTodaysVisit(ctx context.Context, petID, vetID uint) {
	from, to := dayBounds(s.now())
	n, err := s.appointments.CompleteConfirmed(ctx, petID, vetID, from, to)
	if err != nil {
		s.logger.Warn("Failed to auto-complete today's appointments",
			zap.Uint("pet_id", petID),
			zap.Uint("vet_id", vetID),
			zap.Error(err),
		)
		return
	}
	if n > 0 {
		s.logger.Info("Auto-completed today's appointments",
			zap.Uint("pet_id", petID),
			zap.Uint("vet_id", vetID),
			zap.Int64("count", n),
		)
	}
}

// ListVaccinations returns vaccinations visible to the caller; only
// admins and vets hold this list view.
func (s *MedicalService) ListVaccinations(ctx context.Context, caller Caller) ([]model.Vaccination, error) {
	if err := Authorize(caller, model.RoleAdmin, model.RoleVeterinarian); err != nil {
		return nil, err
	}
	return s.medical.ListVaccinations(ctx, caller)
}

// ListMedications returns medications visible to the caller.
func (s *MedicalService) ListMedications(ctx context.Context, caller Caller) ([]model.Medication, error) {
	if err := Authorize(caller, model.RoleAdmin, model.RoleVeterinarian); err != nil {
		return nil, err
	}
	return s.medical.ListMedications(ctx, caller)
}

// PetMedical is the combined medical view for one pet.
type PetMedical struct {
	Pet          *model.Pet          `json:"pet"`
	Vaccinations []model.Vaccination `json:"vaccinations"`
	Medications  []model.Medication  `json:"medications"`
}

// PetMedicalHistory returns a pet with its medical rows. Owners only see
// their own pets; vets and admins see any pet.
func (s *MedicalService) PetMedicalHistory(ctx context.Context, caller Caller, petID uint) (*PetMedical, error) {
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if !caller.CanSeePet(pet) {
		return nil, ErrForbidden
	}

	vaccinations, err := s.medical.ListVaccinationsByPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	medications, err := s.medical.ListMedicationsByPet(ctx, petID)
	if err != nil {
		return nil, err
	}

	return &PetMedical{Pet: pet, Vaccinations: vaccinations, Medications: medications}, nil
}

// UpcomingReminders returns vaccination-due and medication-end reminders
// inside the configured lookahead window, scoped to the caller.
func (s *MedicalService) UpcomingReminders(ctx context.Context, caller Caller) ([]model.Reminder, error) {
	now := s.now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, s.cfg.ReminderLookaheadDays)
	return s.medical.RemindersDue(ctx, caller, from, to)
}
