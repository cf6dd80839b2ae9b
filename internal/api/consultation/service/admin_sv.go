package consultationService

import (
	"context"

	"AdvisoryAssistant/internal/api/consultation"
	consultationRepository "AdvisoryAssistant/internal/api/consultation/repository"
	"AdvisoryAssistant/internal/entity"
	contextPkg "AdvisoryAssistant/pkg/context"
	"AdvisoryAssistant/pkg/ical"
	"AdvisoryAssistant/pkg/smtp"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

func (s *consultationService) Get(ctx context.Context, id string) (entity.Consultation, error) {
	if !s.utils.IsULID(id) {
		return entity.Consultation{}, consultation.ErrInvalidConsultationID
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Consultation{}, err
	}

	return repo.Consultations.GetConsultationByID(ctx, id)
}

func (s *consultationService) List(ctx context.Context, req consultation.ListConsultationsRequest) (consultation.ListConsultationsResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	ctx, span := tracer.Start(ctx, "consultation.list")
	defer span.End()

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = consultation.DefaultPageSize
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return consultation.ListConsultationsResponse{}, err
	}

	total, err := repo.Consultations.CountConsultations(ctx, req.Status)
	if err != nil {
		return consultation.ListConsultationsResponse{}, err
	}

	rows, err := repo.Consultations.ListConsultations(ctx, consultationRepository.ListFilter{
		Status: req.Status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return consultation.ListConsultationsResponse{}, err
	}

	items := make([]consultation.ConsultationResponse, 0, len(rows))
	for _, c := range rows {
		items = append(items, consultation.ToResponse(c))
	}

	span.SetAttributes(attribute.Int64("consultation.total", total))

	return consultation.ListConsultationsResponse{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}

// Invite re-renders the calendar file for a consultation. Cancelled
// consultations get the matching CANCEL so importing it clears the event.
func (s *consultationService) Invite(ctx context.Context, id string) (consultation.InviteFile, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return consultation.InviteFile{}, err
	}

	render, contentType := ical.Request, ical.ContentType
	if c.Status == entity.ConsultationCancelled {
		render, contentType = ical.Cancel, ical.CancelContentType
	}

	body, err := render(s.buildInvite(c), s.now().UTC())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":      contextPkg.GetRequestID(ctx),
			"consultation_id": c.ID,
			"error":           err.Error(),
		}).Error("Failed to render consultation invite")
		return consultation.InviteFile{}, err
	}

	return consultation.InviteFile{
		Filename:    inviteFilename,
		ContentType: contentType,
		Body:        body,
	}, nil
}

func (s *consultationService) UpdateStatus(ctx context.Context, id string, req consultation.UpdateStatusRequest) (entity.Consultation, error) {
	requestID := contextPkg.GetRequestID(ctx)

	ctx, span := tracer.Start(ctx, "consultation.update_status")
	defer span.End()

	if !s.utils.IsULID(id) {
		return entity.Consultation{}, consultation.ErrInvalidConsultationID
	}

	repo, err := s.repo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.Consultation{}, err
	}
	defer repo.Rollback()

	c, err := repo.Consultations.GetConsultationByID(ctx, id)
	if err != nil {
		return entity.Consultation{}, err
	}

	status := entity.ConsultationStatus(req.Status)
	if c.Status == status {
		return c, nil
	}
	if c.Status.Final() {
		s.log.WithFields(logrus.Fields{
			"request_id":      requestID,
			"consultation_id": id,
			"status":          c.Status,
		}).Warn("Attempt to change a closed consultation")
		return entity.Consultation{}, consultation.ErrStatusFinal
	}

	c.Status = status
	c.UpdatedAt = s.now().UTC()

	if err := repo.Consultations.UpdateStatus(ctx, id, c.Status, c.UpdatedAt); err != nil {
		return entity.Consultation{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit consultation status")
		return entity.Consultation{}, err
	}

	span.SetAttributes(
		attribute.String("consultation.id", id),
		attribute.String("consultation.status", string(status)),
	)

	if status == entity.ConsultationCancelled {
		s.withdraw(ctx, c)
	}

	s.log.WithFields(logrus.Fields{
		"request_id":      requestID,
		"consultation_id": id,
		"status":          status,
	}).Info("Consultation status updated")

	return c, nil
}

// withdraw tells the attendee about a cancellation over the channel the
// invite went out on. Failures are logged only.
func (s *consultationService) withdraw(ctx context.Context, c entity.Consultation) {
	requestID := contextPkg.GetRequestID(ctx)
	var err error

	switch {
	case c.Channel == entity.InviteChannelGraph && c.EventID != "" && s.delivery.Graph != nil:
		err = s.delivery.Graph.CancelEvent(ctx, c.EventID, "This consultation has been cancelled.")
	case c.Channel == entity.InviteChannelEmail && s.mailerReady():
		var body []byte
		body, err = ical.Cancel(s.buildInvite(c), s.now().UTC())
		if err == nil {
			err = s.delivery.Mailer.Send(smtp.Mail{
				ToName:  c.Name,
				ToEmail: c.Email,
				Subject: "Cancelled: " + s.subject(c),
				Body:    "Your consultation has been cancelled. Reply to this email to book a new time.",
				Attachment: &smtp.Attachment{
					Filename:    inviteFilename,
					ContentType: ical.CancelContentType,
					Data:        body,
				},
			})
		}
	default:
		return
	}

	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":      requestID,
			"consultation_id": c.ID,
			"channel":         c.Channel,
			"error":           err.Error(),
		}).Warn("Failed to withdraw consultation invite")
	}
}
