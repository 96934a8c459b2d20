package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"petcare-service/internal/model"
)

func newDashboard(f *fixture, stats *fakeStatsStore) *DashboardService {
	return NewDashboardService(stats, f.pets, f.appointments, f.medical, f.scheduling, f.medicalSvc, zap.NewNop())
}

func TestAdminDashboardTotals(t *testing.T) {
	f := newFixture(t)
	stats := &fakeStatsStore{
		activeUsers: 3,
		activities:  []model.Activity{{Type: "Pet Added", Details: "Bruno"}},
	}
	svc := newDashboard(f, stats)
	f.book(t, f.slot())

	dash, err := svc.For(context.Background(), f.admin)
	require.NoError(t, err)

	require.NotNil(t, dash.Admin)
	assert.Nil(t, dash.Vet)
	assert.Nil(t, dash.Owner)
	assert.Equal(t, int64(3), dash.Admin.TotalUsers)
	assert.Equal(t, int64(1), dash.Admin.TotalPets)
	assert.Equal(t, int64(1), dash.Admin.TotalAppointments)
	assert.Len(t, dash.Admin.RecentActivities, 1)
}

func TestVetDashboardShowsTodayOnly(t *testing.T) {
	f := newFixture(t)
	svc := newDashboard(f, &fakeStatsStore{})

	today := time.Now().Truncate(time.Minute)
	f.appointments.appointments[100] = &model.Appointment{
		PetID: f.pet.ID, OwnerID: f.owner.OwnerID, VetID: f.vet.VetID,
		AppointmentDate: today, Status: model.StatusConfirmed,
	}
	f.book(t, f.slot()) // two days out, not today

	// Vaccinate a different pet so the Confirmed visit above stays on
	// today's schedule.
	otherPet := &model.Pet{OwnerID: f.owner.OwnerID, Name: "Milo"}
	require.NoError(t, f.pets.Create(context.Background(), otherPet))
	_, err := f.medicalSvc.AddVaccination(context.Background(), f.vet, VaccinationRequest{
		PetID: otherPet.ID, VaccineName: "Rabies", DateGiven: today,
	})
	require.NoError(t, err)

	dash, err := svc.For(context.Background(), f.vet)
	require.NoError(t, err)

	require.NotNil(t, dash.Vet)
	assert.Len(t, dash.Vet.RecentVaccinations, 1)
	assert.Len(t, dash.Vet.TodayAppointments, 1)
}

func TestOwnerDashboardPetsAndReminders(t *testing.T) {
	f := newFixture(t)
	svc := newDashboard(f, &fakeStatsStore{})
	ctx := context.Background()

	due := time.Now().AddDate(0, 0, 5)
	_, err := f.medicalSvc.AddVaccination(ctx, f.vet, VaccinationRequest{
		PetID: f.pet.ID, VaccineName: "Rabies", DateGiven: time.Now(), NextDueDate: &due,
	})
	require.NoError(t, err)

	dash, err := svc.For(ctx, f.owner)
	require.NoError(t, err)

	require.NotNil(t, dash.Owner)
	assert.Len(t, dash.Owner.Pets, 1)
	assert.Len(t, dash.Owner.UpcomingReminders, 1)
}
