package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"petcare-service/internal/model"
)

// DashboardService assembles the role-specific landing views out of the
// other stores. Everything here is read-only and derived.
type DashboardService struct {
	stats        StatsStore
	pets         PetStore
	appointments AppointmentStore
	medical      MedicalStore
	scheduling   *SchedulingService
	medicalSvc   *MedicalService
	logger       *zap.Logger
	now          func() time.Time
}

func NewDashboardService(
	stats StatsStore,
	pets PetStore,
	appointments AppointmentStore,
	medical MedicalStore,
	scheduling *SchedulingService,
	medicalSvc *MedicalService,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		stats:        stats,
		pets:         pets,
		appointments: appointments,
		medical:      medical,
		scheduling:   scheduling,
		medicalSvc:   medicalSvc,
		logger:       logger,
		now:          time.Now,
	}
}

// AdminDashboard holds system totals and the recent-activity feed.
type AdminDashboard struct {
	TotalUsers        int64            `json:"total_users"`
	TotalPets         int64            `json:"total_pets"`
	TotalAppointments int64            `json:"total_appointments"`
	TotalRecords      int64            `json:"total_records"`
	RecentActivities  []model.Activity `json:"recent_activities"`
}

// VetDashboard holds the vet's schedule for today and the records they
// filed most recently.
type VetDashboard struct {
	TodayAppointments  []model.Appointment `json:"today_appointments"`
	RecentVaccinations []model.Vaccination `json:"recent_vaccinations"`
	RecentMedications  []model.Medication  `json:"recent_medications"`
}

// OwnerDashboard holds the owner's pets and upcoming reminders.
type OwnerDashboard struct {
	Pets              []model.Pet      `json:"pets"`
	UpcomingReminders []model.Reminder `json:"upcoming_reminders"`
}

// Dashboard is the role-tagged union returned to the presentation layer;
// exactly one of the role fields is set.
type Dashboard struct {
	Role  model.UserRole  `json:"role"`
	Admin *AdminDashboard `json:"admin,omitempty"`
	Vet   *VetDashboard   `json:"vet,omitempty"`
	Owner *OwnerDashboard `json:"owner,omitempty"`
}

// For builds the dashboard matching the caller's role.
func (s *DashboardService) For(ctx context.Context, caller Caller) (*Dashboard, error) {
	switch caller.Role {
	case model.RoleAdmin:
		return s.admin(ctx)
	case model.RoleVeterinarian:
		return s.vet(ctx, caller)
	default:
		return s.owner(ctx, caller)
	}
}

func (s *DashboardService) admin(ctx context.Context) (*Dashboard, error) {
	users, err := s.stats.CountActiveUsers(ctx)
	if err != nil {
		return nil, err
	}
	pets, err := s.pets.Count(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	appointments, err := s.appointments.CountUpcoming(ctx, today)
	if err != nil {
		return nil, err
	}
	records, err := s.medical.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	activities, err := s.stats.RecentActivity(ctx, 10)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Role: model.RoleAdmin,
		Admin: &AdminDashboard{
			TotalUsers:        users,
			TotalPets:         pets,
			TotalAppointments: appointments,
			TotalRecords:      records,
			RecentActivities:  activities,
		},
	}, nil
}

func (s *DashboardService) vet(ctx context.Context, caller Caller) (*Dashboard, error) {
	today, err := s.scheduling.Today(ctx, caller)
	if err != nil {
		return nil, err
	}
	vaccinations, err := s.medical.ListVaccinations(ctx, caller)
	if err != nil {
		return nil, err
	}
	medications, err := s.medical.ListMedications(ctx, caller)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Role: model.RoleVeterinarian,
		Vet: &VetDashboard{
			TodayAppointments:  today,
			RecentVaccinations: head(vaccinations, 5),
			RecentMedications:  head(medications, 5),
		},
	}, nil
}

func head[T any](rows []T, n int) []T {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}

func (s *DashboardService) owner(ctx context.Context, caller Caller) (*Dashboard, error) {
	pets, err := s.pets.List(ctx, caller)
	if err != nil {
		return nil, err
	}
	reminders, err := s.medicalSvc.UpcomingReminders(ctx, caller)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Role:  model.RolePetOwner,
		Owner: &OwnerDashboard{Pets: pets, UpcomingReminders: reminders},
	}, nil
}
