package report

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	reporterrors "github.com/CosmosChiang/LifeSwap/internal/report/errors"
	"github.com/CosmosChiang/LifeSwap/internal/shared/apperror"
	"github.com/CosmosChiang/LifeSwap/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service             Service
	defaultMonthlyLimit float64
	logger              *zap.Logger
}

func NewHandler(service Service, defaultMonthlyLimit float64, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("report.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.handler")
	}
	return &Handler{service: service, defaultMonthlyLimit: defaultMonthlyLimit, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("report query failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetSummary(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Summary(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetTrends(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Trends(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetComplianceWarnings(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	limit := h.defaultMonthlyLimit
	if raw := c.Query("monthly_overtime_hour_limit"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.writeServiceError(c, reporterrors.ErrInvalidMonthlyLimitFormat)
			return
		}
		limit = parsed
	}

	resp, err := h.service.ComplianceWarnings(c.Request.Context(), q, limit)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func parseQuery(c *gin.Context) (Query, error) {
	var q Query

	if raw := c.Query("start_date"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			return Query{}, reporterrors.ErrInvalidDateFormat
		}
		q.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			return Query{}, reporterrors.ErrInvalidDateFormat
		}
		q.EndDate = &t
	}
	if raw := strings.TrimSpace(c.Query("request_type")); raw != "" {
		q.RequestType = &raw
	}
	if raw := strings.TrimSpace(c.Query("department")); raw != "" {
		q.Department = &raw
	}

	return q, nil
}
