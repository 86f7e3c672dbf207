package views

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/apiclient"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/auth"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
)

// DashboardView is the rendered dashboard. Staff get Stats, everyone else gets
// Personal. Nothing is shown unless every fetch of the batch succeeded.
type DashboardView struct {
	Role       domain.Role               `json:"role"`
	Approved   bool                      `json:"approved"`
	Stats      *domain.DashboardStats    `json:"stats,omitempty"`
	Personal   *domain.PersonalDashboard `json:"personal,omitempty"`
	Activities []domain.Activity         `json:"activities"`
}

// Dashboard fans out the dashboard requests.
type Dashboard struct {
	life   context.Context
	cancel context.CancelFunc
	api    *apiclient.Client
	viewer *domain.User
}

// NewDashboard binds a dashboard to ctx.
func NewDashboard(ctx context.Context, sess Session) *Dashboard {
	life, cancel := context.WithCancel(ctx)
	return &Dashboard{life: life, cancel: cancel, api: sess.API(), viewer: sess.User()}
}

// Load issues the role's requests in parallel. The first failure cancels the
// rest and fails the whole batch.
func (d *Dashboard) Load() (*DashboardView, error) {
	if err := allow(d.viewer, auth.AnyMember); err != nil {
		return nil, err
	}

	var (
		stats      *domain.DashboardStats
		personal   *domain.PersonalDashboard
		activities []domain.Activity
	)
	g, ctx := errgroup.WithContext(d.life)
	g.Go(func() error {
		var err error
		activities, err = d.api.DashboardActivities(ctx)
		return err
	})
	if auth.HasRole(d.viewer, auth.StaffRoles) {
		g.Go(func() error {
			var err error
			stats, err = d.api.DashboardStats(ctx)
			return err
		})
	} else {
		g.Go(func() error {
			var err error
			personal, err = d.api.DashboardPersonal(ctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if activities == nil {
		activities = []domain.Activity{}
	}
	return &DashboardView{
		Role:       d.viewer.Role,
		Approved:   auth.IsApproved(d.viewer),
		Stats:      stats,
		Personal:   personal,
		Activities: activities,
	}, nil
}

// Close cancels in-flight requests.
func (d *Dashboard) Close() {
	d.cancel()
}

// Branches lists the club branches for forms and filters.
func Branches(ctx context.Context, api *apiclient.Client) ([]domain.Branch, error) {
	branches, err := api.ListBranches(ctx)
	if err != nil {
		return nil, err
	}
	if branches == nil {
		branches = []domain.Branch{}
	}
	return branches, nil
}
