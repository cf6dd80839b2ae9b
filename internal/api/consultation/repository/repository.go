package consultationRepository

import (
	"context"
	"time"

	"AdvisoryAssistant/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Consultations: &consultationRepository{q: sqlExecutor, log: r.log},
		Commit:        commitFunc,
		Rollback:      rollbackFunc,
	}, nil
}

type ListFilter struct {
	Status string
	Limit  int
	Offset int
}

type Client struct {
	Consultations interface {
		CreateConsultation(ctx context.Context, c entity.Consultation) error
		GetConsultationByID(ctx context.Context, id string) (entity.Consultation, error)
		ListConsultations(ctx context.Context, filter ListFilter) ([]entity.Consultation, error)
		CountConsultations(ctx context.Context, status string) (int64, error)
		UpdateDelivery(ctx context.Context, c entity.Consultation) error
		UpdateStatus(ctx context.Context, id string, status entity.ConsultationStatus, updatedAt time.Time) error
	}

	Commit   func() error
	Rollback func() error
}

type consultationRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
