package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portsrepo "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/repositories"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// reportBuildTimeout bounds a shared report build, which outlives any single caller.
const reportBuildTimeout = 30 * time.Second

type reportService struct {
	BaseService
	reportRepo portsrepo.ReportRepository
	cache      portssvc.ReportCache
	group      singleflight.Group
}

// ReportOption configures the report service.
type ReportOption func(*reportService)

// WithReportCache caches built reports until the next status change.
func WithReportCache(c portssvc.ReportCache) ReportOption {
	return func(s *reportService) {
		s.cache = c
	}
}

// NewReportService creates a new report service.
func NewReportService(reportRepo portsrepo.ReportRepository, options ...ReportOption) portssvc.ReportSvcFacade {
	svc := &reportService{reportRepo: reportRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportSvcFacade = (*reportService)(nil)

func (s *reportService) ProjectSummary(ctx context.Context, q domain.ReportQuery) ([]domain.ProjectHours, error) {
	var out []domain.ProjectHours
	err := s.cached(ctx, "project-summary", queryKey(q), &out, func(ctx context.Context) (any, error) {
		rows, err := s.reportRepo.UserProjectHours(ctx, q)
		if err != nil {
			return nil, err
		}
		return foldByProject(rows, nil), nil
	})
	return out, err
}

func (s *reportService) ProjectDetail(ctx context.Context, q domain.ReportQuery) ([]domain.ProjectHours, error) {
	var out []domain.ProjectHours
	err := s.cached(ctx, "project-detail", queryKey(q), &out, func(ctx context.Context) (any, error) {
		rows, err := s.reportRepo.UserProjectHours(ctx, q)
		if err != nil {
			return nil, err
		}
		categories, err := s.reportRepo.CategoryHours(ctx, q)
		if err != nil {
			return nil, err
		}
		return foldByProject(rows, categories), nil
	})
	return out, err
}

func (s *reportService) EmployeeSummary(ctx context.Context, q domain.ReportQuery) ([]domain.EmployeeReport, error) {
	var out []domain.EmployeeReport
	err := s.cached(ctx, "employee-summary", queryKey(q), &out, func(ctx context.Context) (any, error) {
		rows, err := s.reportRepo.UserProjectHours(ctx, q)
		if err != nil {
			return nil, err
		}
		return foldByEmployee(rows, nil), nil
	})
	return out, err
}

func (s *reportService) EmployeeDetail(ctx context.Context, q domain.ReportQuery) ([]domain.EmployeeReport, error) {
	var out []domain.EmployeeReport
	err := s.cached(ctx, "employee-detail", queryKey(q), &out, func(ctx context.Context) (any, error) {
		rows, err := s.reportRepo.UserProjectHours(ctx, q)
		if err != nil {
			return nil, err
		}
		categories, err := s.reportRepo.CategoryHours(ctx, q)
		if err != nil {
			return nil, err
		}
		return foldByEmployee(rows, categories), nil
	})
	return out, err
}

func (s *reportService) MonthlySnapshot(ctx context.Context, userID string, r domain.DateRange) ([]domain.StatusCount, error) {
	var out []domain.StatusCount
	err := s.cached(ctx, "monthly-snapshot", []string{userID, rangeKey(r)}, &out, func(ctx context.Context) (any, error) {
		return s.reportRepo.StatusCounts(ctx, userID, r)
	})
	return out, err
}

func (s *reportService) TimeSummary(ctx context.Context, projectID string, r domain.DateRange) ([]domain.TimeSummaryRow, error) {
	q := domain.ReportQuery{Range: r, ProjectIDs: []string{projectID}}
	var out []domain.TimeSummaryRow
	err := s.cached(ctx, "time-summary", queryKey(q), &out, func(ctx context.Context) (any, error) {
		rows, err := s.reportRepo.UserProjectHours(ctx, q)
		if err != nil {
			return nil, err
		}
		summary := make([]domain.TimeSummaryRow, 0, len(rows))
		for _, row := range rows {
			summary = append(summary, domain.TimeSummaryRow{
				UserID:       row.UserID,
				TeamMember:   domain.CapitalizeWords(row.UserName),
				TotalTime:    row.LoggedHours,
				ApprovedTime: row.ApprovedHours,
			})
		}
		sort.SliceStable(summary, func(i, j int) bool { return summary[i].TeamMember < summary[j].TeamMember })
		return summary, nil
	})
	return out, err
}

// cached builds a report at most once per key across concurrent callers and,
// when a cache is configured, reuses it until the cache version is bumped.
// Every caller decodes its own copy of the shared JSON.
func (s *reportService) cached(ctx context.Context, kind string, parts []string, dest any, build func(context.Context) (any, error)) error {
	key := kind + ":" + strings.Join(parts, ":")
	if s.cache != nil {
		versioned, err := s.cache.BuildKey(ctx, append([]string{"report", kind}, parts...)...)
		if err != nil {
			s.LogError(ctx, err, "Report cache unavailable, building directly", slog.String("report", kind))
		} else {
			key = versioned
		}
	}

	results := s.group.DoChan(key, func() (any, error) {
		buildCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), reportBuildTimeout)
		defer cancel()
		return s.fetch(buildCtx, kind, key, build)
	})
	select {
	case <-ctx.Done():
		return fmt.Errorf("waiting for %s report: %w", kind, ctx.Err())
	case res := <-results:
		if res.Err != nil {
			s.LogError(ctx, res.Err, "Failed to build report", slog.String("report", kind))
			return fmt.Errorf("failed to build %s report: %w", kind, res.Err)
		}
		return json.Unmarshal(res.Val.(json.RawMessage), dest)
	}
}

func (s *reportService) fetch(ctx context.Context, kind, key string, build func(context.Context) (any, error)) (json.RawMessage, error) {
	if s.cache != nil {
		var raw json.RawMessage
		err := s.cache.FetchJSON(ctx, key, &raw, build)
		if err == nil {
			return raw, nil
		}
		s.LogError(ctx, err, "Report cache fetch failed, building directly", slog.String("report", kind))
	}
	value, err := build(ctx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(value)
}

func queryKey(q domain.ReportQuery) []string {
	projects := slices.Clone(q.ProjectIDs)
	users := slices.Clone(q.UserIDs)
	slices.Sort(projects)
	slices.Sort(users)
	return []string{rangeKey(q.Range), "p=" + strings.Join(projects, ","), "u=" + strings.Join(users, ",")}
}

func rangeKey(r domain.DateRange) string {
	return r.Start.Format(time.DateOnly) + "_" + r.End.Format(time.DateOnly)
}

type categoryKey struct {
	userID    string
	projectID string
}

// groupCategories indexes category rows by user and project.
func groupCategories(rows []domain.CategoryHoursRow) map[categoryKey][]domain.CategoryHours {
	grouped := make(map[categoryKey][]domain.CategoryHours)
	for _, r := range rows {
		k := categoryKey{userID: r.UserID, projectID: r.ProjectID}
		grouped[k] = append(grouped[k], domain.CategoryHours{
			Category:      r.Category,
			LoggedHours:   r.LoggedHours,
			ApprovedHours: r.ApprovedHours,
		})
	}
	return grouped
}

// mergeCategoryHours adds the hours of in to acc by category name, keeping acc sorted.
func mergeCategoryHours(acc, in []domain.CategoryHours) []domain.CategoryHours {
	for _, c := range in {
		i := slices.IndexFunc(acc, func(a domain.CategoryHours) bool { return a.Category == c.Category })
		if i < 0 {
			acc = append(acc, c)
			continue
		}
		acc[i].LoggedHours = acc[i].LoggedHours.Add(c.LoggedHours)
		acc[i].ApprovedHours = acc[i].ApprovedHours.Add(c.ApprovedHours)
	}
	sort.Slice(acc, func(i, j int) bool { return acc[i].Category < acc[j].Category })
	return acc
}

func mergeNames(acc, in []string) []string {
	for _, name := range in {
		if !slices.Contains(acc, name) {
			acc = append(acc, name)
		}
	}
	slices.Sort(acc)
	return acc
}

// foldByProject sums per user rows into one row per project, sorted by project name.
// The category breakdown is included when categories is non-nil.
func foldByProject(rows []domain.ProjectHours, categories []domain.CategoryHoursRow) []domain.ProjectHours {
	byCategory := groupCategories(categories)
	index := make(map[string]int)
	out := make([]domain.ProjectHours, 0)

	for _, r := range rows {
		i, ok := index[r.ProjectID]
		if !ok {
			i = len(out)
			index[r.ProjectID] = i
			out = append(out, domain.ProjectHours{
				ProjectID:     r.ProjectID,
				ProjectName:   r.ProjectName,
				LoggedHours:   decimal.Zero,
				ApprovedHours: decimal.Zero,
				Categories:    []string{},
			})
		}
		p := &out[i]
		p.LoggedHours = p.LoggedHours.Add(r.LoggedHours)
		p.ApprovedHours = p.ApprovedHours.Add(r.ApprovedHours)
		p.Categories = mergeNames(p.Categories, r.Categories)
		if categories != nil {
			p.ByCategory = mergeCategoryHours(p.ByCategory, byCategory[categoryKey{userID: r.UserID, projectID: r.ProjectID}])
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ProjectName < out[j].ProjectName })
	return out
}

// foldByEmployee groups per user rows into one report per user, sorted by user name.
func foldByEmployee(rows []domain.ProjectHours, categories []domain.CategoryHoursRow) []domain.EmployeeReport {
	byCategory := groupCategories(categories)
	index := make(map[string]int)
	out := make([]domain.EmployeeReport, 0)

	for _, r := range rows {
		i, ok := index[r.UserID]
		if !ok {
			i = len(out)
			index[r.UserID] = i
			out = append(out, domain.EmployeeReport{
				UserID:             r.UserID,
				UserName:           domain.CapitalizeWords(r.UserName),
				Projects:           []domain.ProjectHours{},
				TotalLoggedHours:   decimal.Zero,
				TotalApprovedHours: decimal.Zero,
			})
		}
		e := &out[i]
		project := domain.ProjectHours{
			ProjectID:     r.ProjectID,
			ProjectName:   r.ProjectName,
			LoggedHours:   r.LoggedHours,
			ApprovedHours: r.ApprovedHours,
			Categories:    r.Categories,
		}
		if project.Categories == nil {
			project.Categories = []string{}
		}
		if categories != nil {
			project.ByCategory = byCategory[categoryKey{userID: r.UserID, projectID: r.ProjectID}]
		}
		e.Projects = append(e.Projects, project)
		e.TotalLoggedHours = e.TotalLoggedHours.Add(r.LoggedHours)
		e.TotalApprovedHours = e.TotalApprovedHours.Add(r.ApprovedHours)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].UserName < out[j].UserName })
	return out
}
