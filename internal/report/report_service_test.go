package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/CosmosChiang/LifeSwap/internal/report"
	reporterrors "github.com/CosmosChiang/LifeSwap/internal/report/errors"
	"github.com/CosmosChiang/LifeSwap/internal/request"
	"github.com/CosmosChiang/LifeSwap/internal/shared/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

type fakeRequestStore struct {
	rows []request.Request
	err  error

	gotStart       time.Time
	gotEnd         time.Time
	gotRequestType *string
	gotDepartment  *string
}

func (f *fakeRequestStore) FindInRange(ctx context.Context, startDate, endDate time.Time, requestType, department *string) ([]request.Request, error) {
	f.gotStart = startDate
	f.gotEnd = endDate
	f.gotRequestType = requestType
	f.gotDepartment = department
	if f.err != nil {
		return nil, f.err
	}

	// Apply the filters the way the SQL layer would so tests can seed one
	// dataset and query it with different filters.
	matched := make([]request.Request, 0, len(f.rows))
	for _, r := range f.rows {
		if r.RequestDate.Before(startDate) || r.RequestDate.After(endDate) {
			continue
		}
		if requestType != nil && r.RequestType != *requestType {
			continue
		}
		if department != nil && r.DepartmentCode != *department {
			continue
		}
		matched = append(matched, r)
	}
	return matched, nil
}

func seededRequest(employeeID, department, requestType, status, date string, hours float64) request.Request {
	day, _ := time.ParseInLocation("2006-01-02", date, time.UTC)
	req := request.Request{
		ID:             uuid.New(),
		RequestType:    requestType,
		EmployeeID:     employeeID,
		DepartmentCode: department,
		RequestDate:    day,
		Status:         status,
	}
	if hours > 0 {
		start := day.Add(18 * time.Hour)
		end := start.Add(time.Duration(hours * float64(time.Hour)))
		req.StartTime = &start
		req.EndTime = &end
	}
	return req
}

func februaryDataset() []request.Request {
	return []request.Request{
		seededRequest("E001", "ENG", request.TypeOvertime, request.StatusApproved, "2026-02-03", 2),
		seededRequest("E002", "ENG", request.TypeOvertime, request.StatusSubmitted, "2026-02-04", 3),
		seededRequest("E003", "HR", request.TypeCompOff, request.StatusRejected, "2026-02-05", 0),
	}
}

func TestReportService_Summary(t *testing.T) {
	ctx := context.Background()

	t.Run("counts and approved overtime hours", func(t *testing.T) {
		repo := &fakeRequestStore{rows: februaryDataset()}
		svc := report.NewService(repo, clock.Fixed(fixedNow))

		start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
		summary, err := svc.Summary(ctx, report.Query{StartDate: &start, EndDate: &end})

		assert.NoError(t, err)
		assert.Equal(t, "2026-02-01", summary.StartDate)
		assert.Equal(t, "2026-02-28", summary.EndDate)
		assert.Equal(t, 3, summary.TotalRequests)
		assert.Equal(t, 1, summary.SubmittedCount)
		assert.Equal(t, 1, summary.ApprovedCount)
		assert.Equal(t, 1, summary.RejectedCount)
		assert.Equal(t, 0, summary.CancelledCount)
		assert.InDelta(t, 2, summary.ApprovedOvertimeHours, 0.0001)
		assert.InDelta(t, 0.3333, summary.ApprovalRate, 0.0001)
	})

	t.Run("department filter", func(t *testing.T) {
		repo := &fakeRequestStore{rows: februaryDataset()}
		svc := report.NewService(repo, clock.Fixed(fixedNow))

		start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
		dept := "HR"
		summary, err := svc.Summary(ctx, report.Query{StartDate: &start, EndDate: &end, Department: &dept})

		assert.NoError(t, err)
		assert.Equal(t, 1, summary.TotalRequests)
		assert.Equal(t, 1, summary.RejectedCount)
		assert.InDelta(t, 0, summary.ApprovedOvertimeHours, 0.0001)
		assert.InDelta(t, 0, summary.ApprovalRate, 0.0001)
	})

	t.Run("department filter scopes hours", func(t *testing.T) {
		rows := []request.Request{
			seededRequest("E001", "ENG", request.TypeOvertime, request.StatusApproved, "2026-02-03", 2),
			seededRequest("E002", "HR", request.TypeOvertime, request.StatusApproved, "2026-02-03", 2),
		}
		repo := &fakeRequestStore{rows: rows}
		svc := report.NewService(repo, clock.Fixed(fixedNow))

		start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
		dept := "ENG"
		summary, err := svc.Summary(ctx, report.Query{StartDate: &start, EndDate: &end, Department: &dept})

		assert.NoError(t, err)
		assert.Equal(t, 1, summary.TotalRequests)
		assert.InDelta(t, 2, summary.ApprovedOvertimeHours, 0.0001)
	})

	t.Run("empty range has zero approval rate", func(t *testing.T) {
		repo := &fakeRequestStore{}
		svc := report.NewService(repo, clock.Fixed(fixedNow))

		summary, err := svc.Summary(ctx, report.Query{})

		assert.NoError(t, err)
		assert.Equal(t, 0, summary.TotalRequests)
		assert.InDelta(t, 0, summary.ApprovalRate, 0.0001)
	})

	t.Run("invalid type filter", func(t *testing.T) {
		repo := &fakeRequestStore{}
		svc := report.NewService(repo, clock.Fixed(fixedNow))

		bad := "VACATION"
		_, err := svc.Summary(ctx, report.Query{RequestType: &bad})

		assert.ErrorIs(t, err, reporterrors.ErrInvalidRequestTypeFilter)
	})
}

func TestReportService_RangeDefaults(t *testing.T) {
	ctx := context.Background()

	t.Run("missing range defaults to last 30 days", func(t *testing.T) {
		repo := &fakeRequestStore{}
		svc := report.NewService(repo, clock.Fixed(fixedNow))

		_, err := svc.Summary(ctx, report.Query{})

		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), repo.gotEnd)
		assert.Equal(t, time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC), repo.gotStart)
	})

	t.Run("inverted range is swapped", func(t *testing.T) {
		repo := &fakeRequestStore{}
		svc := report.NewService(repo, clock.Fixed(fixedNow))

		start := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		_, err := svc.Summary(ctx, report.Query{StartDate: &start, EndDate: &end})

		assert.NoError(t, err)
		assert.Equal(t, end, repo.gotStart)
		assert.Equal(t, start, repo.gotEnd)
	})

	t.Run("blank filters are dropped", func(t *testing.T) {
		repo := &fakeRequestStore{}
		svc := report.NewService(repo, clock.Fixed(fixedNow))

		blankType := "  "
		blankDept := ""
		_, err := svc.Summary(ctx, report.Query{RequestType: &blankType, Department: &blankDept})

		assert.NoError(t, err)
		assert.Nil(t, repo.gotRequestType)
		assert.Nil(t, repo.gotDepartment)
	})
}

func TestReportService_Trends(t *testing.T) {
	ctx := context.Background()

	rows := februaryDataset()
	rows = append(rows,
		seededRequest("E001", "ENG", request.TypeOvertime, request.StatusApproved, "2026-02-03", 1.5),
		seededRequest("E004", "ENG", request.TypeCompOff, request.StatusCancelled, "2026-02-10", 0),
	)
	repo := &fakeRequestStore{rows: rows}
	svc := report.NewService(repo, clock.Fixed(fixedNow))

	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	points, err := svc.Trends(ctx, report.Query{StartDate: &start, EndDate: &end})

	assert.NoError(t, err)
	// Sparse series: only four distinct dates have data.
	assert.Len(t, points, 4)

	assert.Equal(t, "2026-02-03", points[0].Date)
	assert.Equal(t, 2, points[0].TotalRequests)
	assert.Equal(t, 2, points[0].ApprovedCount)
	assert.InDelta(t, 3.5, points[0].ApprovedOvertimeHours, 0.0001)

	assert.Equal(t, "2026-02-04", points[1].Date)
	assert.Equal(t, 1, points[1].SubmittedCount)
	assert.InDelta(t, 0, points[1].ApprovedOvertimeHours, 0.0001)

	assert.Equal(t, "2026-02-05", points[2].Date)
	assert.Equal(t, 1, points[2].RejectedCount)

	assert.Equal(t, "2026-02-10", points[3].Date)
	assert.Equal(t, 1, points[3].CancelledCount)
}

func TestReportService_ComplianceWarnings(t *testing.T) {
	ctx := context.Background()

	t.Run("severity thresholds and ordering", func(t *testing.T) {
		rows := []request.Request{
			seededRequest("A", "ENG", request.TypeOvertime, request.StatusApproved, "2026-02-03", 4),
			seededRequest("A", "ENG", request.TypeOvertime, request.StatusApproved, "2026-02-10", 5),
			seededRequest("B", "ENG", request.TypeOvertime, request.StatusApproved, "2026-02-04", 3),
			seededRequest("B", "ENG", request.TypeOvertime, request.StatusApproved, "2026-02-11", 4),
			seededRequest("C", "ENG", request.TypeOvertime, request.StatusApproved, "2026-02-05", 2),
			seededRequest("D", "ENG", request.TypeOvertime, request.StatusSubmitted, "2026-02-06", 40),
		}
		repo := &fakeRequestStore{rows: rows}
		svc := report.NewService(repo, clock.Fixed(fixedNow))

		start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
		warnings, err := svc.ComplianceWarnings(ctx, report.Query{StartDate: &start, EndDate: &end}, 8)

		assert.NoError(t, err)
		assert.Len(t, warnings, 2)

		assert.Equal(t, "A", warnings[0].EmployeeID)
		assert.Equal(t, 2026, warnings[0].Year)
		assert.Equal(t, 2, warnings[0].Month)
		assert.InDelta(t, 9, warnings[0].ApprovedOvertimeHours, 0.0001)
		assert.Equal(t, report.SeverityCritical, warnings[0].Severity)
		assert.Equal(t, "已超過月加班上限，請立即檢視排班與補休安排。", warnings[0].Message)

		assert.Equal(t, "B", warnings[1].EmployeeID)
		assert.InDelta(t, 7, warnings[1].ApprovedOvertimeHours, 0.0001)
		assert.Equal(t, report.SeverityWarning, warnings[1].Severity)
		assert.Equal(t, "接近月加班上限，建議提前調整人力與排程。", warnings[1].Message)
	})

	t.Run("forces overtime filter", func(t *testing.T) {
		repo := &fakeRequestStore{}
		svc := report.NewService(repo, clock.Fixed(fixedNow))

		compOff := request.TypeCompOff
		_, err := svc.ComplianceWarnings(ctx, report.Query{RequestType: &compOff}, 46)

		assert.NoError(t, err)
		assert.NotNil(t, repo.gotRequestType)
		assert.Equal(t, request.TypeOvertime, *repo.gotRequestType)
	})

	t.Run("non positive limit rejected", func(t *testing.T) {
		repo := &fakeRequestStore{}
		svc := report.NewService(repo, clock.Fixed(fixedNow))

		_, err := svc.ComplianceWarnings(ctx, report.Query{}, 0)
		assert.ErrorIs(t, err, reporterrors.ErrInvalidMonthlyLimit)
	})

	t.Run("months tracked separately", func(t *testing.T) {
		rows := []request.Request{
			seededRequest("A", "ENG", request.TypeOvertime, request.StatusApproved, "2026-01-20", 7),
			seededRequest("A", "ENG", request.TypeOvertime, request.StatusApproved, "2026-02-10", 3),
		}
		repo := &fakeRequestStore{rows: rows}
		svc := report.NewService(repo, clock.Fixed(fixedNow))

		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
		warnings, err := svc.ComplianceWarnings(ctx, report.Query{StartDate: &start, EndDate: &end}, 8)

		assert.NoError(t, err)
		assert.Len(t, warnings, 1)
		assert.Equal(t, 1, warnings[0].Month)
		assert.InDelta(t, 7, warnings[0].ApprovedOvertimeHours, 0.0001)
	})
}
