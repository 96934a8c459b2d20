package repository

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"petcare-service/internal/model"
)

// StatsRepository is the gorm-backed service.StatsStore.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CountActiveUsers(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.User{}).Scopes(activeUsers).Count(&count)
	if result.Error != nil {
		return 0, translate("count users", result.Error)
	}
	return count, nil
}

// RecentActivity merges the latest registrations, pets and bookings into
// one feed, newest first.
func (r *StatsRepository) RecentActivity(ctx context.Context, limit int) ([]model.Activity, error) {
	var activities []model.Activity

	var users []model.User
	result := r.db.WithContext(ctx).Scopes(activeUsers).Order("created_at DESC").Limit(limit).Find(&users)
	if result.Error != nil {
		return nil, translate("recent users", result.Error)
	}
	for _, u := range users {
		activities = append(activities, model.Activity{
			Type:    "User Registered",
			Details: fmt.Sprintf("%s (%s)", u.FullName, u.Role),
			When:    u.CreatedAt,
		})
	}

	var pets []model.Pet
	result = r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&pets)
	if result.Error != nil {
		return nil, translate("recent pets", result.Error)
	}
	for _, p := range pets {
		activities = append(activities, model.Activity{
			Type:    "Pet Added",
			Details: p.Name,
			When:    p.CreatedAt,
		})
	}

	var appts []model.Appointment
	result = r.db.WithContext(ctx).Preload("Pet").Order("created_at DESC").Limit(limit).Find(&appts)
	if result.Error != nil {
		return nil, translate("recent appointments", result.Error)
	}
	for _, a := range appts {
		activities = append(activities, model.Activity{
			Type:    "Appointment Booked",
			Details: fmt.Sprintf("%s on %s", a.Pet.Name, a.AppointmentDate.Format("2006-01-02 15:04")),
			When:    a.CreatedAt,
		})
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].When.After(activities[j].When)
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}
