package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"petcare-service/internal/model"
	"petcare-service/pkg/config"
)

// SchedulingService validates and persists appointment bookings, detects
// slot conflicts and applies role-gated status transitions.
type SchedulingService struct {
	appointments AppointmentStore
	pets         PetStore
	users        UserStore
	cfg          config.SchedulingConfig
	logger       *zap.Logger
	now          func() time.Time
}

func NewSchedulingService(
	appointments AppointmentStore,
	pets PetStore,
	users UserStore,
	cfg config.SchedulingConfig,
	logger *zap.Logger,
) *SchedulingService {
	return &SchedulingService{
		appointments: appointments,
		pets:         pets,
		users:        users,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

// BookRequest is the payload for an owner-initiated booking.
type BookRequest struct {
	PetID  uint
	VetID  uint
	At     time.Time
	Reason string
}

// Book creates a Pending appointment for the caller's pet with the given
// veterinarian. The conflict check and the insert execute as one atomic
// unit in the store so two concurrent bookings for the same slot cannot
// both succeed.
func (s *SchedulingService) Book(ctx context.Context, caller Caller, req BookRequest) (*model.Appointment, error) {
	if err := Authorize(caller, model.RolePetOwner); err != nil {
		return nil, err
	}
	if req.PetID == 0 || req.VetID == 0 {
		return nil, fmt.Errorf("%w: pet_id and vet_id are required", ErrValidation)
	}
	if req.At.IsZero() {
		return nil, fmt.Errorf("%w: appointment_date is required", ErrValidation)
	}
	if !req.At.After(s.now()) {
		return nil, fmt.Errorf("%w: appointment_date must be in the future", ErrValidation)
	}

	pet, err := s.pets.GetByID(ctx, req.PetID)
	if err != nil {
		return nil, err
	}
	if pet.OwnerID != caller.OwnerID {
		return nil, ErrForbidden
	}

	vet, err := s.users.VetByID(ctx, req.VetID)
	if err != nil {
		return nil, err
	}
	vetUser, err := s.users.GetByID(ctx, vet.UserID)
	if err != nil {
		return nil, err
	}
	if vetUser.Status != model.UserStatusActive {
		return nil, ErrNotFound
	}

	appt := &model.Appointment{
		PetID:           pet.ID,
		OwnerID:         pet.OwnerID,
		VetID:           vet.ID,
		AppointmentDate: req.At,
		Status:          model.StatusPending,
		Reason:          req.Reason,
	}

	if err := s.appointments.CreateBooking(ctx, appt, s.cfg.ConflictBuffer); err != nil {
		return nil, err
	}

	s.logger.Info("Appointment booked",
		zap.Uint("appointment_id", appt.ID),
		zap.Uint("pet_id", appt.PetID),
		zap.Uint("owner_id", appt.OwnerID),
		zap.Uint("vet_id", appt.VetID),
		zap.Time("appointment_date", appt.AppointmentDate),
	)

	return appt, nil
}

// transition describes one allowed edge of the status state machine.
type transition struct {
	from model.AppointmentStatus
	to   model.AppointmentStatus
}

// allowedTransitions maps each edge to the check deciding whether the
// caller may drive it. Confirm and Complete belong to the assigned vet;
// Cancel belongs to the booking owner or an admin.
var allowedTransitions = map[transition]func(Caller, *model.Appointment) bool{
	{model.StatusPending, model.StatusConfirmed}:   assignedVet,
	{model.StatusConfirmed, model.StatusCompleted}: assignedVet,
	{model.StatusPending, model.StatusCancelled}:   bookingOwnerOrAdmin,
	{model.StatusConfirmed, model.StatusCancelled}: bookingOwnerOrAdmin,
}

func assignedVet(c Caller, a *model.Appointment) bool {
	return c.IsVet() && a.VetID == c.VetID
}

func bookingOwnerOrAdmin(c Caller, a *model.Appointment) bool {
	if c.IsAdmin() {
		return true
	}
	return c.IsOwner() && a.OwnerID == c.OwnerID
}

// Transition applies a status change to an appointment. Visibility is
// checked before anything else: a caller that cannot see the row gets
// ErrForbidden, not ErrNotFound. Cancelling frees the (vet, time) slot
// for future bookings; Completed and Cancelled are terminal.
func (s *SchedulingService) Transition(ctx context.Context, caller Caller, appointmentID uint, target model.AppointmentStatus) (*model.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if !caller.CanSeeAppointment(appt) {
		return nil, ErrForbidden
	}

	check, ok := allowedTransitions[transition{appt.Status, target}]
	if !ok {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, target)
	}
	if !check(caller, appt) {
		return nil, ErrForbidden
	}

	if err := s.appointments.UpdateStatus(ctx, appt.ID, target); err != nil {
		return nil, err
	}
	appt.Status = target

	s.logger.Info("Appointment status updated",
		zap.Uint("appointment_id", appt.ID),
		zap.String("status", string(target)),
		zap.Uint("user_id", caller.UserID),
	)

	return appt, nil
}

// List returns the appointments visible to the caller, newest first.
func (s *SchedulingService) List(ctx context.Context, caller Caller) ([]model.Appointment, error) {
	return s.appointments.List(ctx, caller)
}

// Today returns the caller's Pending and Confirmed appointments falling
// within the current calendar day.
func (s *SchedulingService) Today(ctx context.Context, caller Caller) ([]model.Appointment, error) {
	from, to := dayBounds(s.now())
	return s.appointments.ListBetween(ctx, caller, from, to, model.BlockingStatuses)
}

func dayBounds(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 0, 1)
}
