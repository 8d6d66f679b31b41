package services

import (
	"context"
	"time"

	"github.com/joseph-annor/stayhub/internal/helpers"
	"github.com/joseph-annor/stayhub/internal/models"
)

type DashboardService struct {
	hotelsRepo   models.HotelsRepo
	bookingsRepo models.BookingsRepo
	now          func() time.Time
}

func NewDashboardService(hotelsRepo models.HotelsRepo, bookingsRepo models.BookingsRepo) *DashboardService {
	return &DashboardService{
		hotelsRepo:   hotelsRepo,
		bookingsRepo: bookingsRepo,
		now:          time.Now,
	}
}

// OwnerDashboard aggregates activity across every hotel the caller owns.
// An owner with no hotels gets an empty dashboard rather than an error.
func (ds *DashboardService) OwnerDashboard(ctx context.Context, identity helpers.Identity) (*models.DashboardStats, error) {
	hotelIDs, err := ds.hotelsRepo.HotelIDsByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if len(hotelIDs) == 0 {
		return &models.DashboardStats{RecentBookings: []*models.BookingView{}}, nil
	}
	return ds.bookingsRepo.DashboardStats(ctx, hotelIDs, ds.now())
}
