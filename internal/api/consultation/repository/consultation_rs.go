package consultationRepository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"AdvisoryAssistant/internal/api/consultation"
	"AdvisoryAssistant/internal/entity"
	contextPkg "AdvisoryAssistant/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

type ConsultationDB struct {
	ID              sql.NullString `db:"id"`
	Name            sql.NullString `db:"name"`
	Email           sql.NullString `db:"email"`
	Company         sql.NullString `db:"company"`
	FirmType        sql.NullString `db:"firm_type"`
	Phone           sql.NullString `db:"phone"`
	Interests       sql.NullString `db:"interests"`
	Message         sql.NullString `db:"message"`
	Timezone        sql.NullString `db:"timezone"`
	PreferredAt     sql.NullTime   `db:"preferred_at"`
	DurationMinutes sql.NullInt64  `db:"duration_minutes"`
	Status          sql.NullString `db:"status"`
	Channel         sql.NullString `db:"channel"`
	EventID         sql.NullString `db:"event_id"`
	InviteKey       sql.NullString `db:"invite_key"`
	CreatedAt       sql.NullTime   `db:"created_at"`
	UpdatedAt       sql.NullTime   `db:"updated_at"`
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
}

func (r *consultationRepository) CreateConsultation(ctx context.Context, c entity.Consultation) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":               c.ID,
		"name":             c.Name,
		"email":            c.Email,
		"company":          c.Company,
		"firm_type":        c.FirmType,
		"phone":            c.Phone,
		"interests":        strings.Join(c.Interests, ","),
		"message":          c.Message,
		"timezone":         c.Timezone,
		"preferred_at":     c.PreferredAt.UTC(),
		"duration_minutes": int64(c.Duration / time.Minute),
		"status":           string(c.Status),
		"channel":          string(c.Channel),
		"event_id":         c.EventID,
		"invite_key":       c.InviteKey,
		"created_at":       c.CreatedAt.UTC(),
		"updated_at":       c.UpdatedAt.UTC(),
	}

	query, args, err := sqlx.Named(queryCreateConsultation, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateConsultation")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Consultation already booked")
			return consultation.ErrDuplicateConsultation
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating consultation")
		return err
	}

	return nil
}

func (r *consultationRepository) GetConsultationByID(ctx context.Context, id string) (entity.Consultation, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row ConsultationDB

	query, args, err := sqlx.Named(queryGetConsultationByID, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetConsultationByID named query preparation err")
		return entity.Consultation{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id":      requestID,
				"consultation_id": id,
			}).Warn("GetConsultationByID no rows found")
			return entity.Consultation{}, consultation.ErrConsultationNotFound
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetConsultationByID query err")
		return entity.Consultation{}, err
	}

	return r.makeConsultation(row), nil
}

func (r *consultationRepository) ListConsultations(ctx context.Context, filter ListFilter) ([]entity.Consultation, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []ConsultationDB

	query, args, err := sqlx.Named(queryListConsultations, map[string]interface{}{
		"status": filter.Status,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListConsultations named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListConsultations query err")
		return nil, err
	}

	result := make([]entity.Consultation, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.makeConsultation(row))
	}

	return result, nil
}

func (r *consultationRepository) CountConsultations(ctx context.Context, status string) (int64, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var total int64

	query, args, err := sqlx.Named(queryCountConsultations, map[string]interface{}{
		"status": status,
	})
	if err != nil {
		return 0, err
	}
	query = r.q.Rebind(query)

	if err := r.q.GetContext(ctx, &total, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountConsultations query err")
		return 0, err
	}

	return total, nil
}

func (r *consultationRepository) UpdateDelivery(ctx context.Context, c entity.Consultation) error {
	return r.exec(ctx, "UpdateDelivery", queryUpdateDelivery, map[string]interface{}{
		"id":         c.ID,
		"status":     string(c.Status),
		"channel":    string(c.Channel),
		"event_id":   c.EventID,
		"invite_key": c.InviteKey,
		"updated_at": c.UpdatedAt.UTC(),
	})
}

func (r *consultationRepository) UpdateStatus(ctx context.Context, id string, status entity.ConsultationStatus, updatedAt time.Time) error {
	return r.exec(ctx, "UpdateStatus", queryUpdateStatus, map[string]interface{}{
		"id":         id,
		"status":     string(status),
		"updated_at": updatedAt.UTC(),
	})
}

// exec runs an update and reports ErrConsultationNotFound when no row
// matched.
func (r *consultationRepository) exec(ctx context.Context, op, namedQuery string, argsKV map[string]interface{}) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"operation":  op,
			"error":      err.Error(),
		}).Error("Failed to build SQL query")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"operation":  op,
			"error":      err.Error(),
		}).Error("Database error when updating consultation")
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return consultation.ErrConsultationNotFound
	}

	return nil
}

func (r *consultationRepository) makeConsultation(row ConsultationDB) entity.Consultation {
	var interests []string
	if row.Interests.String != "" {
		interests = strings.Split(row.Interests.String, ",")
	}

	return entity.Consultation{
		ID:          row.ID.String,
		Name:        row.Name.String,
		Email:       row.Email.String,
		Company:     row.Company.String,
		FirmType:    row.FirmType.String,
		Phone:       row.Phone.String,
		Interests:   interests,
		Message:     row.Message.String,
		Timezone:    row.Timezone.String,
		PreferredAt: row.PreferredAt.Time.UTC(),
		Duration:    time.Duration(row.DurationMinutes.Int64) * time.Minute,
		Status:      entity.ConsultationStatus(row.Status.String),
		Channel:     entity.InviteChannel(row.Channel.String),
		EventID:     row.EventID.String,
		InviteKey:   row.InviteKey.String,
		CreatedAt:   row.CreatedAt.Time.UTC(),
		UpdatedAt:   row.UpdatedAt.Time.UTC(),
	}
}
