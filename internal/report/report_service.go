package report

import (
	"context"
	"sort"
	"strings"
	"time"

	reporterrors "github.com/CosmosChiang/LifeSwap/internal/report/errors"
	"github.com/CosmosChiang/LifeSwap/internal/request"
	"github.com/CosmosChiang/LifeSwap/internal/shared/clock"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Repository is the slice of request storage the reporting engine needs.
// Reads go straight through; no write transaction is ever opened here.
type Repository interface {
	FindInRange(ctx context.Context, startDate, endDate time.Time, requestType, department *string) ([]request.Request, error)
}

type Service interface {
	Summary(ctx context.Context, q Query) (Summary, error)
	Trends(ctx context.Context, q Query) ([]TrendPoint, error)
	ComplianceWarnings(ctx context.Context, q Query, monthlyOvertimeHourLimit float64) ([]ComplianceWarning, error)
}

type service struct {
	repo   Repository
	clock  clock.Clock
	logger *zap.Logger
}

func NewService(repo Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{repo: repo, clock: clk, logger: l}
}

func (s *service) Summary(ctx context.Context, q Query) (Summary, error) {
	q, startDate, endDate, err := s.resolveQuery(q)
	if err != nil {
		return Summary{}, err
	}

	rows, err := s.repo.FindInRange(ctx, startDate, endDate, q.RequestType, q.Department)
	if err != nil {
		s.logger.Error("summary query failed", zap.Error(err))
		return Summary{}, err
	}

	summary := Summary{
		StartDate:   startDate.Format("2006-01-02"),
		EndDate:     endDate.Format("2006-01-02"),
		RequestType: q.RequestType,
		Department:  q.Department,
	}

	var approvedOvertimeHours float64
	for i := range rows {
		r := &rows[i]
		summary.TotalRequests++
		switch r.Status {
		case request.StatusSubmitted:
			summary.SubmittedCount++
		case request.StatusApproved:
			summary.ApprovedCount++
		case request.StatusRejected:
			summary.RejectedCount++
		case request.StatusCancelled:
			summary.CancelledCount++
		}
		// Only approved overtime contributes hours, regardless of the
		// request-type filter in effect.
		if r.Status == request.StatusApproved && r.RequestType == request.TypeOvertime {
			approvedOvertimeHours += r.Hours()
		}
	}

	summary.ApprovedOvertimeHours = round2(approvedOvertimeHours)
	if summary.TotalRequests > 0 {
		summary.ApprovalRate = round4(float64(summary.ApprovedCount) / float64(summary.TotalRequests))
	}

	return summary, nil
}

func (s *service) Trends(ctx context.Context, q Query) ([]TrendPoint, error) {
	q, startDate, endDate, err := s.resolveQuery(q)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindInRange(ctx, startDate, endDate, q.RequestType, q.Department)
	if err != nil {
		s.logger.Error("trends query failed", zap.Error(err))
		return nil, err
	}

	type bucket struct {
		point TrendPoint
		hours float64
	}
	buckets := make(map[string]*bucket)
	for i := range rows {
		r := &rows[i]
		day := r.RequestDate.Format("2006-01-02")
		b, ok := buckets[day]
		if !ok {
			b = &bucket{point: TrendPoint{Date: day}}
			buckets[day] = b
		}

		b.point.TotalRequests++
		switch r.Status {
		case request.StatusSubmitted:
			b.point.SubmittedCount++
		case request.StatusApproved:
			b.point.ApprovedCount++
		case request.StatusRejected:
			b.point.RejectedCount++
		case request.StatusCancelled:
			b.point.CancelledCount++
		}
		if r.Status == request.StatusApproved && r.RequestType == request.TypeOvertime {
			b.hours += r.Hours()
		}
	}

	// Sparse series: only dates with at least one matching request appear.
	points := make([]TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		b.point.ApprovedOvertimeHours = round2(b.hours)
		points = append(points, b.point)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	return points, nil
}

func (s *service) ComplianceWarnings(ctx context.Context, q Query, monthlyOvertimeHourLimit float64) ([]ComplianceWarning, error) {
	if monthlyOvertimeHourLimit <= 0 {
		return nil, reporterrors.ErrInvalidMonthlyLimit
	}

	overtime := request.TypeOvertime
	q.RequestType = &overtime
	q, startDate, endDate, err := s.resolveQuery(q)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindInRange(ctx, startDate, endDate, q.RequestType, q.Department)
	if err != nil {
		s.logger.Error("compliance query failed", zap.Error(err))
		return nil, err
	}

	type groupKey struct {
		employeeID string
		year       int
		month      time.Month
	}
	totals := make(map[groupKey]float64)
	for i := range rows {
		r := &rows[i]
		if r.Status != request.StatusApproved {
			continue
		}
		key := groupKey{
			employeeID: r.EmployeeID,
			year:       r.RequestDate.Year(),
			month:      r.RequestDate.Month(),
		}
		totals[key] += r.Hours()
	}

	warnings := make([]ComplianceWarning, 0)
	for key, hours := range totals {
		rounded := round2(hours)
		if rounded < monthlyOvertimeHourLimit*0.8 {
			continue
		}

		severity := SeverityWarning
		message := "接近月加班上限，建議提前調整人力與排程。"
		if rounded >= monthlyOvertimeHourLimit {
			severity = SeverityCritical
			message = "已超過月加班上限，請立即檢視排班與補休安排。"
		}

		warnings = append(warnings, ComplianceWarning{
			EmployeeID:               key.employeeID,
			Year:                     key.year,
			Month:                    int(key.month),
			ApprovedOvertimeHours:    rounded,
			MonthlyOvertimeHourLimit: monthlyOvertimeHourLimit,
			Severity:                 severity,
			Message:                  message,
		})
	}

	sort.Slice(warnings, func(i, j int) bool {
		return warnings[i].ApprovedOvertimeHours > warnings[j].ApprovedOvertimeHours
	})

	return warnings, nil
}

// resolveQuery normalizes filters and resolves the date range: a missing
// end defaults to today (UTC), a missing start to end minus 30 days, and
// an inverted range is swapped rather than rejected.
func (s *service) resolveQuery(q Query) (Query, time.Time, time.Time, error) {
	if q.RequestType != nil {
		t := strings.TrimSpace(*q.RequestType)
		if t == "" {
			q.RequestType = nil
		} else if t != request.TypeOvertime && t != request.TypeCompOff {
			return q, time.Time{}, time.Time{}, reporterrors.ErrInvalidRequestTypeFilter
		} else {
			q.RequestType = &t
		}
	}

	if q.Department != nil {
		d := strings.TrimSpace(*q.Department)
		if d == "" {
			q.Department = nil
		} else {
			q.Department = &d
		}
	}

	endDate := truncateToDay(s.clock.Now())
	if q.EndDate != nil {
		endDate = truncateToDay(*q.EndDate)
	}

	startDate := endDate.AddDate(0, 0, -30)
	if q.StartDate != nil {
		startDate = truncateToDay(*q.StartDate)
	}

	if startDate.After(endDate) {
		startDate, endDate = endDate, startDate
	}

	return q, startDate, endDate, nil
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func round4(v float64) float64 {
	return decimal.NewFromFloat(v).Round(4).InexactFloat64()
}
