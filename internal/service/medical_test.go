package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-service/internal/model"
)

func TestAddVaccinationRequiresVet(t *testing.T) {
	f := newFixture(t)

	_, err := f.medicalSvc.AddVaccination(context.Background(), f.owner, VaccinationRequest{
		PetID: f.pet.ID, VaccineName: "Rabies", DateGiven: time.Now(),
	})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAddVaccinationCompletesTodaysConfirmedVisit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	today := time.Now().Truncate(time.Minute)
	appt := &model.Appointment{
		PetID:           f.pet.ID,
		OwnerID:         f.owner.OwnerID,
		VetID:           f.vet.VetID,
		AppointmentDate: today,
		Status:          model.StatusConfirmed,
	}
	f.appointments.appointments[100] = appt

	_, err := f.medicalSvc.AddVaccination(ctx, f.vet, VaccinationRequest{
		PetID: f.pet.ID, VaccineName: "Rabies", DateGiven: today,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusCompleted, appt.Status)
}

func TestAddMedicationLeavesPendingAppointmentsAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	today := time.Now().Truncate(time.Minute)
	appt := &model.Appointment{
		PetID:           f.pet.ID,
		OwnerID:         f.owner.OwnerID,
		VetID:           f.vet.VetID,
		AppointmentDate: today,
		Status:          model.StatusPending,
	}
	f.appointments.appointments[100] = appt

	_, err := f.medicalSvc.AddMedication(ctx, f.vet, MedicationRequest{
		PetID: f.pet.ID, MedicineName: "Carprofen", Dosage: "25mg", StartDate: today,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, appt.Status)
}

func TestAddMedicationValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.medicalSvc.AddMedication(context.Background(), f.vet, MedicationRequest{
		PetID: f.pet.ID, MedicineName: "  ",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestPetMedicalHistoryOwnerScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.medicalSvc.AddVaccination(ctx, f.vet, VaccinationRequest{
		PetID: f.pet.ID, VaccineName: "Rabies", DateGiven: time.Now(),
	})
	require.NoError(t, err)

	history, err := f.medicalSvc.PetMedicalHistory(ctx, f.owner, f.pet.ID)
	require.NoError(t, err)
	assert.Len(t, history.Vaccinations, 1)

	stranger := Caller{UserID: 999, Role: model.RolePetOwner, OwnerID: 999}
	_, err = f.medicalSvc.PetMedicalHistory(ctx, stranger, f.pet.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpcomingRemindersWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	now := time.Now()
	soon := now.AddDate(0, 0, 10)
	far := now.AddDate(0, 0, 60)

	_, err := f.medicalSvc.AddVaccination(ctx, f.vet, VaccinationRequest{
		PetID: f.pet.ID, VaccineName: "Rabies", DateGiven: now, NextDueDate: &soon,
	})
	require.NoError(t, err)

	_, err = f.medicalSvc.AddVaccination(ctx, f.vet, VaccinationRequest{
		PetID: f.pet.ID, VaccineName: "Distemper", DateGiven: now, NextDueDate: &far,
	})
	require.NoError(t, err)

	_, err = f.medicalSvc.AddMedication(ctx, f.vet, MedicationRequest{
		PetID: f.pet.ID, MedicineName: "Carprofen", StartDate: now, EndDate: &soon,
	})
	require.NoError(t, err)

	reminders, err := f.medicalSvc.UpcomingReminders(ctx, f.owner)
	require.NoError(t, err)

	require.Len(t, reminders, 2)
	for _, r := range reminders {
		assert.NotEqual(t, "Distemper", r.Details)
	}
}

func TestListVaccinationsScopedToVet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.medicalSvc.AddVaccination(ctx, f.vet, VaccinationRequest{
		PetID: f.pet.ID, VaccineName: "Rabies", DateGiven: time.Now(),
	})
	require.NoError(t, err)

	mine, err := f.medicalSvc.ListVaccinations(ctx, f.vet)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	otherVet := Caller{UserID: 999, Role: model.RoleVeterinarian, VetID: f.vet.VetID + 1}
	theirs, err := f.medicalSvc.ListVaccinations(ctx, otherVet)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	_, err = f.medicalSvc.ListVaccinations(ctx, f.owner)
	assert.ErrorIs(t, err, ErrForbidden)
}
