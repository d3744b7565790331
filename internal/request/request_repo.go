package request

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *Request) error
	FindAll(ctx context.Context, employeeID, status string) ([]Request, error)
	FindByID(ctx context.Context, id string) (*Request, error)
	Update(ctx context.Context, r *Request) error
	FindSubmittedBefore(ctx context.Context, cutoff time.Time) ([]Request, error)
	FindInRange(ctx context.Context, startDate, endDate time.Time, requestType, department *string) ([]Request, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository onto the caller's transaction, so every
// gorm call joins it instead of running on the pool. SkipDefaultTransaction
// keeps gorm from opening a nested one.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		return r
	}
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindAll(ctx context.Context, employeeID, status string) ([]Request, error) {
	db := r.db.WithContext(ctx).Model(&Request{})
	if employeeID != "" {
		db = db.Where("employee_id = ?", employeeID)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var rows []Request
	err := db.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Request, error) {
	var req Request
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) Update(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *repository) FindSubmittedBefore(ctx context.Context, cutoff time.Time) ([]Request, error) {
	var rows []Request
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusSubmitted).
		Where("submitted_at IS NOT NULL").
		Where("submitted_at <= ?", cutoff).
		Find(&rows).Error
	return rows, err
}

// FindInRange selects requests whose date falls in [startDate, endDate]
// inclusive, optionally narrowed by type and exact department code. The
// reporting engine and the periodic report job both read through here.
func (r *repository) FindInRange(ctx context.Context, startDate, endDate time.Time, requestType, department *string) ([]Request, error) {
	db := r.db.WithContext(ctx).
		Model(&Request{}).
		Where("request_date >= ?", startDate.Format("2006-01-02")).
		Where("request_date <= ?", endDate.Format("2006-01-02"))

	if requestType != nil && *requestType != "" {
		db = db.Where("request_type = ?", *requestType)
	}
	if department != nil && *department != "" {
		db = db.Where("department_code = ?", *department)
	}

	var rows []Request
	err := db.Find(&rows).Error
	return rows, err
}
