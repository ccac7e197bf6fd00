package service

import (
	"context"

	"go-hotel-pms/internal/access"
	"go-hotel-pms/internal/repository"
)

type DashboardService interface {
	GetDashboardStats(ctx context.Context, actor Actor) (*DashboardStats, error)
}

// DashboardStats is scoped to the actor's hotel, or to every hotel for system users.
type DashboardStats struct {
	HotelID        string                       `json:"hotel_id,omitempty"`
	TotalHotels    int64                        `json:"total_hotels"`
	HotelsByStatus map[access.HotelStatus]int64 `json:"hotels_by_status"`
	TotalUsers     int64                        `json:"total_users"`
	UsersByRole    map[string]int64             `json:"users_by_role"`
}

type dashboardService struct {
	authorizer
	hotelRepo repository.HotelRepository
	userRepo  repository.UserRepository
}

func NewDashboardService(hotelRepo repository.HotelRepository, userRepo repository.UserRepository, evaluator *access.Evaluator) DashboardService {
	return &dashboardService{
		authorizer: authorizer{evaluator: evaluator},
		hotelRepo:  hotelRepo,
		userRepo:   userRepo,
	}
}

func (s *dashboardService) GetDashboardStats(ctx context.Context, actor Actor) (*DashboardStats, error) {
	if err := s.require(actor, access.PermDashboardView); err != nil {
		return nil, err
	}

	scope := actor.HotelID
	if actor.IsSystem() {
		scope = ""
	}

	byStatus, err := s.hotelRepo.CountByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}
	byRole, err := s.userRepo.CountByRole(ctx, scope)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{HotelID: scope, HotelsByStatus: byStatus, UsersByRole: byRole}
	for _, n := range byStatus {
		stats.TotalHotels += n
	}
	for _, n := range byRole {
		stats.TotalUsers += n
	}
	return stats, nil
}
