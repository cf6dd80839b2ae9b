package assistantRepository

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
		Turns:    &turnsRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Turns interface {
		CreateTurn(ctx context.Context, turn entity.ChatTurn) error
		GetTurnsBySession(ctx context.Context, sessionID string) ([]entity.ChatTurn, error)
		CountTurns(ctx context.Context, since time.Time) (int64, int64, error)
		CountByRoute(ctx context.Context, since time.Time) ([]entity.RouteCount, error)
		TopIntents(ctx context.Context, since time.Time, limit int) ([]entity.IntentCount, error)
		TopServices(ctx context.Context, since time.Time, limit int) ([]entity.ServiceCount, error)
	}

	Commit   func() error
	Rollback func() error
}

type turnsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
