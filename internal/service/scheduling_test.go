package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"petcare-service/internal/model"
	"petcare-service/pkg/config"
)

// fixture wires the services over shared fakes with one owner, one vet
// and one pet pre-registered.
type fixture struct {
	users        *fakeUserStore
	pets         *fakePetStore
	appointments *fakeAppointmentStore
	medical      *fakeMedicalStore
	expenses     *fakeExpenseStore

	scheduling *SchedulingService
	medicalSvc *MedicalService

	owner Caller
	vet   Caller
	admin Caller
	pet   *model.Pet
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := newFakeUserStore()
	pets := newFakePetStore()
	appointments := newFakeAppointmentStore()
	medical := newFakeMedicalStore(pets)
	expenses := newFakeExpenseStore()

	ctx := context.Background()

	ownerUser := &model.User{FullName: "Asha Rao", Email: "asha@example.com", Role: model.RolePetOwner, Status: model.UserStatusActive}
	ownerProfile := &model.Owner{}
	require.NoError(t, users.CreateWithProfile(ctx, ownerUser, ownerProfile, nil))

	vetUser := &model.User{FullName: "Dr Mehta", Email: "mehta@example.com", Role: model.RoleVeterinarian, Status: model.UserStatusActive}
	vetProfile := &model.Veterinarian{Specialization: "Surgery"}
	require.NoError(t, users.CreateWithProfile(ctx, vetUser, nil, vetProfile))

	adminUser := &model.User{FullName: "Admin", Email: "admin@example.com", Role: model.RoleAdmin, Status: model.UserStatusActive}
	require.NoError(t, users.CreateWithProfile(ctx, adminUser, nil, nil))

	pet := &model.Pet{OwnerID: ownerProfile.ID, Name: "Bruno"}
	require.NoError(t, pets.Create(ctx, pet))

	cfg := config.SchedulingConfig{ConflictBuffer: 0, ReminderLookaheadDays: 30}
	log := zap.NewNop()

	return &fixture{
		users:        users,
		pets:         pets,
		appointments: appointments,
		medical:      medical,
		expenses:     expenses,
		scheduling:   NewSchedulingService(appointments, pets, users, cfg, log),
		medicalSvc:   NewMedicalService(medical, pets, appointments, cfg, log),
		owner:        Caller{UserID: ownerUser.ID, Role: model.RolePetOwner, OwnerID: ownerProfile.ID},
		vet:          Caller{UserID: vetUser.ID, Role: model.RoleVeterinarian, VetID: vetProfile.ID},
		admin:        Caller{UserID: adminUser.ID, Role: model.RoleAdmin},
		pet:          pet,
	}
}

func (f *fixture) slot() time.Time {
	return time.Now().Add(48 * time.Hour).Truncate(time.Minute)
}

func (f *fixture) book(t *testing.T, at time.Time) *model.Appointment {
	t.Helper()
	appt, err := f.scheduling.Book(context.Background(), f.owner, BookRequest{
		PetID: f.pet.ID, VetID: f.vet.VetID, At: at, Reason: "checkup",
	})
	require.NoError(t, err)
	return appt
}

func TestBookCreatesPendingAppointment(t *testing.T) {
	f := newFixture(t)

	appt := f.book(t, f.slot())

	assert.Equal(t, model.StatusPending, appt.Status)
	assert.Equal(t, f.pet.ID, appt.PetID)
	assert.Equal(t, f.owner.OwnerID, appt.OwnerID)
	assert.Equal(t, f.vet.VetID, appt.VetID)
}

func TestBookRejectsTakenSlot(t *testing.T) {
	f := newFixture(t)
	at := f.slot()
	f.book(t, at)

	_, err := f.scheduling.Book(context.Background(), f.owner, BookRequest{
		PetID: f.pet.ID, VetID: f.vet.VetID, At: at, Reason: "second",
	})

	assert.ErrorIs(t, err, ErrSchedulingConflict)
}

func TestBookAllowsSlotAfterCancellation(t *testing.T) {
	f := newFixture(t)
	at := f.slot()
	appt := f.book(t, at)

	_, err := f.scheduling.Transition(context.Background(), f.owner, appt.ID, model.StatusCancelled)
	require.NoError(t, err)

	rebooked, err := f.scheduling.Book(context.Background(), f.owner, BookRequest{
		PetID: f.pet.ID, VetID: f.vet.VetID, At: at, Reason: "retry",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, rebooked.Status)
}

func TestBookRejectsPastDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.scheduling.Book(context.Background(), f.owner, BookRequest{
		PetID: f.pet.ID, VetID: f.vet.VetID, At: time.Now().Add(-time.Hour),
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestBookRejectsForeignPet(t *testing.T) {
	f := newFixture(t)

	otherPet := &model.Pet{OwnerID: f.owner.OwnerID + 99, Name: "Ghost"}
	require.NoError(t, f.pets.Create(context.Background(), otherPet))

	_, err := f.scheduling.Book(context.Background(), f.owner, BookRequest{
		PetID: otherPet.ID, VetID: f.vet.VetID, At: f.slot(),
	})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestBookRequiresOwnerRole(t *testing.T) {
	f := newFixture(t)

	_, err := f.scheduling.Book(context.Background(), f.vet, BookRequest{
		PetID: f.pet.ID, VetID: f.vet.VetID, At: f.slot(),
	})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestVetConfirmsAndCompletes(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t, f.slot())

	confirmed, err := f.scheduling.Transition(context.Background(), f.vet, appt.ID, model.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, confirmed.Status)

	completed, err := f.scheduling.Transition(context.Background(), f.vet, appt.ID, model.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, completed.Status)
}

func TestPendingCannotComplete(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t, f.slot())

	_, err := f.scheduling.Transition(context.Background(), f.vet, appt.ID, model.StatusCompleted)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTerminalStatusesAreFinal(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t, f.slot())

	_, err := f.scheduling.Transition(context.Background(), f.owner, appt.ID, model.StatusCancelled)
	require.NoError(t, err)

	_, err = f.scheduling.Transition(context.Background(), f.vet, appt.ID, model.StatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOwnerCannotConfirm(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t, f.slot())

	_, err := f.scheduling.Transition(context.Background(), f.owner, appt.ID, model.StatusConfirmed)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAdminCanCancel(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t, f.slot())

	cancelled, err := f.scheduling.Transition(context.Background(), f.admin, appt.ID, model.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, cancelled.Status)
}

func TestForeignCallerGetsForbiddenNotNotFound(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t, f.slot())

	stranger := Caller{UserID: 999, Role: model.RolePetOwner, OwnerID: 999}
	_, err := f.scheduling.Transition(context.Background(), stranger, appt.ID, model.StatusCancelled)

	assert.ErrorIs(t, err, ErrForbidden)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestOtherVetCannotConfirm(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t, f.slot())

	otherVet := Caller{UserID: 999, Role: model.RoleVeterinarian, VetID: f.vet.VetID + 1}
	_, err := f.scheduling.Transition(context.Background(), otherVet, appt.ID, model.StatusConfirmed)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListScopesToCaller(t *testing.T) {
	f := newFixture(t)
	f.book(t, f.slot())
	f.book(t, f.slot().Add(time.Hour))

	ctx := context.Background()

	ownerList, err := f.scheduling.List(ctx, f.owner)
	require.NoError(t, err)
	assert.Len(t, ownerList, 2)

	vetList, err := f.scheduling.List(ctx, f.vet)
	require.NoError(t, err)
	assert.Len(t, vetList, 2)

	stranger := Caller{UserID: 999, Role: model.RolePetOwner, OwnerID: 999}
	strangerList, err := f.scheduling.List(ctx, stranger)
	require.NoError(t, err)
	assert.Empty(t, strangerList)

	adminList, err := f.scheduling.List(ctx, f.admin)
	require.NoError(t, err)
	assert.Len(t, adminList, 2)
}

func TestConcurrentBookingsSingleWinner(t *testing.T) {
	f := newFixture(t)
	at := f.slot()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.scheduling.Book(context.Background(), f.owner, BookRequest{
				PetID: f.pet.ID, VetID: f.vet.VetID, At: at, Reason: "race",
			})
		}(i)
	}
	wg.Wait()

	var booked, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			booked++
		case errors.Is(err, ErrSchedulingConflict):
			conflicts++
		default:
			t.Fatalf("unexpected booking error: %v", err)
		}
	}
	assert.Equal(t, 1, booked)
	assert.Equal(t, attempts-1, conflicts)
}

func TestTransitionToPendingIsInvalid(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t, f.slot())

	_, err := f.scheduling.Transition(context.Background(), f.vet, appt.ID, model.StatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.scheduling.Transition(context.Background(), f.vet, appt.ID, model.AppointmentStatus("Bogus"))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestConflictErrorCarriesCollidingTime(t *testing.T) {
	f := newFixture(t)
	f.scheduling.cfg.ConflictBuffer = 30 * time.Minute
	at := f.slot()
	f.book(t, at)

	_, err := f.scheduling.Book(context.Background(), f.owner, BookRequest{
		PetID: f.pet.ID, VetID: f.vet.VetID, At: at.Add(15 * time.Minute),
	})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.True(t, conflict.At.Equal(at))
}

func TestBookRespectsConflictBuffer(t *testing.T) {
	f := newFixture(t)
	f.scheduling.cfg.ConflictBuffer = 30 * time.Minute
	at := f.slot()
	f.book(t, at)

	_, err := f.scheduling.Book(context.Background(), f.owner, BookRequest{
		PetID: f.pet.ID, VetID: f.vet.VetID, At: at.Add(15 * time.Minute),
	})
	assert.ErrorIs(t, err, ErrSchedulingConflict)

	_, err = f.scheduling.Book(context.Background(), f.owner, BookRequest{
		PetID: f.pet.ID, VetID: f.vet.VetID, At: at.Add(31 * time.Minute),
	})
	assert.NoError(t, err)
}
