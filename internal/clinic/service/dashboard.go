package service

import (
	"context"
	"time"

	"github.com/openclinic/clinicd/internal/clinic/domain"
	"github.com/openclinic/clinicd/internal/clinic/store"
)

// DashboardCounts is the per-clinic summary shown on the landing view.
type DashboardCounts struct {
	Patients             int64
	VisitsLast7Days      int64
	OverdueFollowUps     int64
	UpcomingAppointments int64
}

// DashboardService aggregates per-clinic counts. Plain reads; minor
// skew between the four counts is acceptable.
type DashboardService struct {
	Store store.Store
}

func (s *DashboardService) Counts(
	ctx context.Context,
	p domain.Principal,
) (DashboardCounts, error) {
	now := time.Now().UTC()

	var out DashboardCounts
	var err error

	if out.Patients, err = s.Store.Patients().CountPatients(ctx, p.ClinicID); err != nil {
		return DashboardCounts{}, err
	}
	if out.VisitsLast7Days, err = s.Store.Visits().CountSince(ctx, p.ClinicID, now.AddDate(0, 0, -7)); err != nil {
		return DashboardCounts{}, err
	}
	if out.OverdueFollowUps, err = s.Store.FollowUps().CountOverdue(ctx, p.ClinicID); err != nil {
		return DashboardCounts{}, err
	}
	if out.UpcomingAppointments, err = s.Store.Appointments().CountUpcoming(ctx, p.ClinicID, now); err != nil {
		return DashboardCounts{}, err
	}
	return out, nil
}
