package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/platform/cache"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var december = domain.DateRange{Start: day("2024-12-01"), End: day("2024-12-31")}

func hours(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func userProjectRows() []domain.ProjectHours {
	return []domain.ProjectHours{
		{ProjectID: "p2", ProjectName: "Borealis", UserID: "u1", UserName: "zara khan", LoggedHours: hours("0.1"), ApprovedHours: hours("0"), Categories: []string{"QA"}},
		{ProjectID: "p1", ProjectName: "Atlas", UserID: "u1", UserName: "zara khan", LoggedHours: hours("8"), ApprovedHours: hours("8"), Categories: []string{"Dev"}},
		{ProjectID: "p2", ProjectName: "Borealis", UserID: "u2", UserName: "adil roy", LoggedHours: hours("0.2"), ApprovedHours: hours("0.2"), Categories: []string{"Dev", "QA"}},
	}
}

func newReportCache(t *testing.T) *cache.ReportCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewReportCache(client, 0)
}

func TestReportService_ProjectSummaryFoldsExactly(t *testing.T) {
	ctx := context.Background()
	q := domain.ReportQuery{Range: december}
	repo := new(MockReportRepository)
	repo.On("UserProjectHours", mock.Anything, q).Return(userProjectRows(), nil).Once()

	out, err := services.NewReportService(repo).ProjectSummary(ctx, q)

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Atlas", out[0].ProjectName)
	assert.Equal(t, "Borealis", out[1].ProjectName)
	assert.Equal(t, "0.3", out[1].LoggedHours.String())
	assert.Equal(t, "0.2", out[1].ApprovedHours.String())
	assert.Equal(t, []string{"Dev", "QA"}, out[1].Categories)
	assert.Empty(t, out[1].ByCategory)
}

func TestReportService_ProjectDetailMergesCategories(t *testing.T) {
	ctx := context.Background()
	q := domain.ReportQuery{Range: december, ProjectIDs: []string{"p2"}}
	repo := new(MockReportRepository)
	repo.On("UserProjectHours", mock.Anything, q).Return(userProjectRows()[2:], nil).Once()
	repo.On("CategoryHours", mock.Anything, q).Return([]domain.CategoryHoursRow{
		{UserID: "u2", ProjectID: "p2", Category: "QA", LoggedHours: hours("0.15"), ApprovedHours: hours("0.15")},
		{UserID: "u2", ProjectID: "p2", Category: "Dev", LoggedHours: hours("0.05"), ApprovedHours: hours("0.05")},
	}, nil).Once()

	out, err := services.NewReportService(repo).ProjectDetail(ctx, q)

	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Len(t, out[0].ByCategory, 2)
	assert.Equal(t, "Dev", out[0].ByCategory[0].Category)
	assert.Equal(t, "0.05", out[0].ByCategory[0].LoggedHours.String())
	assert.Equal(t, "QA", out[0].ByCategory[1].Category)
}

func TestReportService_EmployeeSummaryGroupsByUser(t *testing.T) {
	ctx := context.Background()
	q := domain.ReportQuery{Range: december}
	repo := new(MockReportRepository)
	repo.On("UserProjectHours", mock.Anything, q).Return(userProjectRows(), nil).Once()

	out, err := services.NewReportService(repo).EmployeeSummary(ctx, q)

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Adil Roy", out[0].UserName)
	assert.Equal(t, "Zara Khan", out[1].UserName)
	assert.Len(t, out[1].Projects, 2)
	assert.Equal(t, "8.1", out[1].TotalLoggedHours.String())
	assert.Equal(t, "8", out[1].TotalApprovedHours.String())
}

func TestReportService_TimeSummarySortsByMember(t *testing.T) {
	ctx := context.Background()
	q := domain.ReportQuery{Range: december, ProjectIDs: []string{"p2"}}
	repo := new(MockReportRepository)
	repo.On("UserProjectHours", mock.Anything, q).Return([]domain.ProjectHours{
		userProjectRows()[0], userProjectRows()[2],
	}, nil).Once()

	out, err := services.NewReportService(repo).TimeSummary(ctx, "p2", december)

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Adil Roy", out[0].TeamMember)
	assert.Equal(t, "Zara Khan", out[1].TeamMember)
	assert.Equal(t, "0.1", out[1].TotalTime.String())
}

func TestReportService_RepositoryErrorIsWrapped(t *testing.T) {
	ctx := context.Background()
	q := domain.ReportQuery{Range: december}
	boom := errors.New("aggregate failed")
	repo := new(MockReportRepository)
	repo.On("UserProjectHours", mock.Anything, q).Return(nil, boom).Once()

	_, err := services.NewReportService(repo).EmployeeSummary(ctx, q)

	assert.ErrorIs(t, err, boom)
}

func TestReportService_CachesUntilBump(t *testing.T) {
	ctx := context.Background()
	reports := newReportCache(t)
	repo := new(MockReportRepository)
	repo.On("StatusCounts", mock.Anything, "u1", december).Return([]domain.StatusCount{
		{Status: domain.TimesheetApproved, Count: 3},
	}, nil).Twice()
	svc := services.NewReportService(repo, services.WithReportCache(reports))

	first, err := svc.MonthlySnapshot(ctx, "u1", december)
	require.NoError(t, err)
	second, err := svc.MonthlySnapshot(ctx, "u1", december)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	repo.AssertNumberOfCalls(t, "StatusCounts", 1)

	require.NoError(t, reports.Bump(ctx))
	_, err = svc.MonthlySnapshot(ctx, "u1", december)
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "StatusCounts", 2)
}

func TestReportService_CacheKeyIgnoresFilterOrder(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReportRepository)
	repo.On("UserProjectHours", mock.Anything, mock.Anything).Return(userProjectRows(), nil)
	svc := services.NewReportService(repo, services.WithReportCache(newReportCache(t)))

	_, err := svc.ProjectSummary(ctx, domain.ReportQuery{Range: december, ProjectIDs: []string{"p2", "p1"}})
	require.NoError(t, err)
	_, err = svc.ProjectSummary(ctx, domain.ReportQuery{Range: december, ProjectIDs: []string{"p1", "p2"}})
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "UserProjectHours", 1)
}

func TestReportService_CanceledCallerDoesNotFailSharedBuild(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	repo := new(MockReportRepository)
	repo.On("StatusCounts", mock.Anything, "u1", december).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
			assert.NoError(t, args.Get(0).(context.Context).Err())
		}).
		Return([]domain.StatusCount{{Status: domain.TimesheetSubmitted, Count: 2}}, nil).Once()
	svc := services.NewReportService(repo)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.MonthlySnapshot(firstCtx, "u1", december)
		firstErr <- err
	}()
	<-started

	second := make(chan []domain.StatusCount, 1)
	secondErr := make(chan error, 1)
	go func() {
		out, err := svc.MonthlySnapshot(context.Background(), "u1", december)
		second <- out
		secondErr <- err
	}()

	cancelFirst()
	require.ErrorIs(t, <-firstErr, context.Canceled)

	// Give the second caller time to join the in-flight build.
	time.Sleep(50 * time.Millisecond)
	close(release)

	require.NoError(t, <-secondErr)
	out := <-second
	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].Count)
	repo.AssertNumberOfCalls(t, "StatusCounts", 1)
}
