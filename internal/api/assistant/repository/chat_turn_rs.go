package assistantRepository

import (
	"context"
	"database/sql"
	"time"

	"AdvisoryAssistant/internal/entity"
	contextPkg "AdvisoryAssistant/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ChatTurnDB struct {
	ID          sql.NullString `db:"id"`
	SessionID   sql.NullString `db:"session_id"`
	UserMessage sql.NullString `db:"user_message"`
	Reply       sql.NullString `db:"reply"`
	Route       sql.NullString `db:"route"`
	Intent      sql.NullString `db:"intent"`
	Score       sql.NullInt64  `db:"score"`
	LastService sql.NullString `db:"last_service"`
	CreatedAt   time.Time      `db:"created_at"`
}

type countsDB struct {
	Turns    int64 `db:"turns"`
	Sessions int64 `db:"sessions"`
}

func (r *turnsRepository) CreateTurn(ctx context.Context, turn entity.ChatTurn) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":           turn.ID,
		"session_id":   turn.SessionID,
		"user_message": turn.UserMessage,
		"reply":        turn.Reply,
		"route":        turn.Route,
		"intent":       turn.Intent,
		"score":        turn.Score,
		"last_service": turn.LastService,
		"created_at":   turn.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateTurn, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateTurn")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when recording chat turn")
		return err
	}

	return nil
}

func (r *turnsRepository) GetTurnsBySession(ctx context.Context, sessionID string) ([]entity.ChatTurn, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []ChatTurnDB

	query, args, err := sqlx.Named(queryGetTurnsBySession, map[string]interface{}{
		"session_id": sessionID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTurnsBySession named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTurnsBySession execution err")
		return nil, err
	}

	turns := make([]entity.ChatTurn, 0, len(rows))
	for _, row := range rows {
		turns = append(turns, r.makeTurn(row))
	}

	return turns, nil
}

func (r *turnsRepository) CountTurns(ctx context.Context, since time.Time) (int64, int64, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var counts countsDB

	query, args, err := sqlx.Named(queryCountTurns, map[string]interface{}{
		"since": since,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountTurns named query preparation err")
		return 0, 0, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&counts); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountTurns execution err")
		return 0, 0, err
	}

	return counts.Turns, counts.Sessions, nil
}

func (r *turnsRepository) CountByRoute(ctx context.Context, since time.Time) ([]entity.RouteCount, error) {
	var counts []entity.RouteCount
	err := r.selectSince(ctx, "CountByRoute", queryCountByRoute, &counts, map[string]interface{}{
		"since": since,
	})
	return counts, err
}

func (r *turnsRepository) TopIntents(ctx context.Context, since time.Time, limit int) ([]entity.IntentCount, error) {
	var counts []entity.IntentCount
	err := r.selectSince(ctx, "TopIntents", queryTopIntents, &counts, map[string]interface{}{
		"since": since,
		"limit": limit,
	})
	return counts, err
}

func (r *turnsRepository) TopServices(ctx context.Context, since time.Time, limit int) ([]entity.ServiceCount, error) {
	var counts []entity.ServiceCount
	err := r.selectSince(ctx, "TopServices", queryTopServices, &counts, map[string]interface{}{
		"since": since,
		"limit": limit,
	})
	return counts, err
}

func (r *turnsRepository) selectSince(ctx context.Context, name, namedQuery string, dest interface{}, argsKV map[string]interface{}) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(name + " named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, dest, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(name + " execution err")
		return err
	}

	return nil
}

func (r *turnsRepository) makeTurn(row ChatTurnDB) entity.ChatTurn {
	return entity.ChatTurn{
		ID:          row.ID.String,
		SessionID:   row.SessionID.String,
		UserMessage: row.UserMessage.String,
		Reply:       row.Reply.String,
		Route:       row.Route.String,
		Intent:      row.Intent.String,
		Score:       int(row.Score.Int64),
		LastService: row.LastService.String,
		CreatedAt:   row.CreatedAt,
	}
}
