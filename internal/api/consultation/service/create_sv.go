package consultationService

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"AdvisoryAssistant/internal/api/consultation"
	"AdvisoryAssistant/internal/entity"
	contextPkg "AdvisoryAssistant/pkg/context"
	"AdvisoryAssistant/pkg/graph"
	"AdvisoryAssistant/pkg/ical"
	"AdvisoryAssistant/pkg/s3"
	"AdvisoryAssistant/pkg/smtp"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	inviteFilename        = "invite.ics"
	deliveryUnavailable   = "no invite channel is configured, our team will follow up by email"
	deliveryFailedMessage = "the calendar invite could not be sent, our team will follow up by email"
)

var errNoChannel = errors.New("no invite channel configured")

func (s *consultationService) Create(ctx context.Context, req consultation.CreateConsultationRequest) (consultation.CreateConsultationResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	ctx, span := tracer.Start(ctx, "consultation.create")
	defer span.End()

	now := s.now().UTC()
	if !req.PreferredTime.After(now) {
		return consultation.CreateConsultationResponse{}, consultation.ErrPreferredTimeInPast
	}

	interests, err := s.normalizeInterests(req.Interests)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"interests":  req.Interests,
		}).Warn("Consultation requested for unknown service")
		return consultation.CreateConsultationResponse{}, err
	}

	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate consultation id")
		return consultation.CreateConsultationResponse{}, err
	}

	duration := time.Duration(req.DurationMinutes) * time.Minute
	if duration <= 0 {
		duration = consultation.DefaultDurationMinutes * time.Minute
	}
	timezone := req.Timezone
	if timezone == "" {
		timezone = consultation.DefaultTimezone
	}

	c := entity.Consultation{
		ID:          id,
		Name:        s.utils.DisplayName(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Company:     strings.TrimSpace(req.Company),
		FirmType:    req.FirmType,
		Phone:       req.Phone,
		Interests:   interests,
		Message:     strings.TrimSpace(req.Message),
		Timezone:    timezone,
		PreferredAt: req.PreferredTime.UTC(),
		Duration:    duration,
		Status:      entity.ConsultationPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return consultation.CreateConsultationResponse{}, err
	}

	if err := repo.Consultations.CreateConsultation(ctx, c); err != nil {
		return consultation.CreateConsultationResponse{}, err
	}

	invite, err := ical.Request(s.buildInvite(c), now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":      requestID,
			"consultation_id": c.ID,
			"error":           err.Error(),
		}).Error("Failed to render consultation invite")
		return consultation.CreateConsultationResponse{}, err
	}

	res := consultation.CreateConsultationResponse{ID: c.ID}

	if err := s.deliver(ctx, &c, invite); err != nil {
		res.DeliveryError = deliveryFailedMessage
		if errors.Is(err, errNoChannel) {
			res.DeliveryError = deliveryUnavailable
		}
	}

	if s.delivery.Storage != nil {
		res.InviteURL = s.archive(ctx, &c, invite)
	}

	if c.Status != entity.ConsultationPending || c.InviteKey != "" {
		c.UpdatedAt = s.now().UTC()
		if err := repo.Consultations.UpdateDelivery(ctx, c); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id":      requestID,
				"consultation_id": c.ID,
				"error":           err.Error(),
			}).Error("Failed to record consultation delivery")
		}
	}

	span.SetAttributes(
		attribute.String("consultation.id", c.ID),
		attribute.String("consultation.status", string(c.Status)),
		attribute.String("consultation.channel", string(c.Channel)),
	)

	s.log.WithFields(logrus.Fields{
		"request_id":      requestID,
		"consultation_id": c.ID,
		"status":          c.Status,
		"channel":         c.Channel,
	}).Info("Consultation requested")

	res.Status = c.Status
	res.Channel = c.Channel
	return res, nil
}

// normalizeInterests maps each entry onto its canonical service key,
// ignoring case, and drops duplicates while keeping the visitor's order.
func (s *consultationService) normalizeInterests(raw []string) ([]string, error) {
	known := make(map[string]string)
	for _, svc := range s.source.Services() {
		known[strings.ToLower(svc.Key)] = svc.Key
	}

	seen := make(map[string]struct{}, len(raw))
	interests := make([]string, 0, len(raw))

	for _, entry := range raw {
		key, ok := known[strings.ToLower(strings.TrimSpace(entry))]
		if !ok {
			return nil, consultation.ErrUnknownInterest
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		interests = append(interests, key)
	}

	return interests, nil
}

// deliver tries Graph first and falls back to emailing the invite. c is
// left pending when neither channel succeeds.
func (s *consultationService) deliver(ctx context.Context, c *entity.Consultation, invite []byte) error {
	requestID := contextPkg.GetRequestID(ctx)
	var lastErr error = errNoChannel

	if s.delivery.Graph != nil {
		created, err := s.delivery.Graph.CreateEvent(ctx, graph.Event{
			TransactionID: c.ID,
			Subject:       s.subject(*c),
			Body:          s.describe(*c),
			Start:         c.PreferredAt,
			End:           c.EndsAt(),
			Attendees:     []graph.Attendee{{Name: c.Name, Email: c.Email}},
			OnlineMeeting: true,
		})
		if err == nil {
			c.Status = entity.ConsultationScheduled
			c.Channel = entity.InviteChannelGraph
			c.EventID = created.ID
			return nil
		}

		s.log.WithFields(logrus.Fields{
			"request_id":      requestID,
			"consultation_id": c.ID,
			"error":           err.Error(),
		}).Warn("Failed to create calendar event, falling back to email")
		lastErr = err
	}

	if s.mailerReady() {
		err := s.delivery.Mailer.Send(smtp.Mail{
			ToName:  c.Name,
			ToEmail: c.Email,
			Subject: s.subject(*c),
			Body:    s.describe(*c),
			Attachment: &smtp.Attachment{
				Filename:    inviteFilename,
				ContentType: ical.ContentType,
				Data:        invite,
			},
		})
		if err == nil {
			c.Status = entity.ConsultationEmailed
			c.Channel = entity.InviteChannelEmail
			return nil
		}

		s.log.WithFields(logrus.Fields{
			"request_id":      requestID,
			"consultation_id": c.ID,
			"error":           err.Error(),
		}).Error("Failed to email consultation invite")
		lastErr = err
	}

	return lastErr
}

// archive uploads the invite and returns a presigned link to it, or "" when
// either step fails.
func (s *consultationService) archive(ctx context.Context, c *entity.Consultation, invite []byte) string {
	requestID := contextPkg.GetRequestID(ctx)
	key := s3.InviteKey(c.ID, c.CreatedAt)

	if _, err := s.delivery.Storage.UploadBytes(ctx, key, ical.ContentType, invite); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":      requestID,
			"consultation_id": c.ID,
			"error":           err.Error(),
		}).Warn("Failed to archive consultation invite")
		return ""
	}
	c.InviteKey = key

	url, err := s.delivery.Storage.PresignUrl(key)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":      requestID,
			"consultation_id": c.ID,
			"error":           err.Error(),
		}).Warn("Failed to presign consultation invite")
		return ""
	}

	return url
}

func (s *consultationService) buildInvite(c entity.Consultation) ical.Invite {
	return ical.Invite{
		UID:            strings.ToLower(c.ID) + "@consultations",
		Summary:        s.subject(c),
		Description:    s.describe(c),
		Location:       "Online",
		Start:          c.PreferredAt,
		End:            c.EndsAt(),
		OrganizerName:  s.delivery.OrganizerName,
		OrganizerEmail: s.delivery.OrganizerEmail,
		AttendeeName:   c.Name,
		AttendeeEmail:  c.Email,
	}
}

func (s *consultationService) subject(c entity.Consultation) string {
	return fmt.Sprintf("Consultation with %s", c.Company)
}

func (s *consultationService) describe(c entity.Consultation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Consultation for %s (%s).\n", c.Name, c.Company)

	titles := make([]string, 0, len(c.Interests))
	for _, key := range c.Interests {
		if svc, ok := s.source.GetServiceInfo(key); ok {
			titles = append(titles, svc.Title)
		}
	}
	if len(titles) > 0 {
		fmt.Fprintf(&b, "Topics: %s.\n", strings.Join(titles, ", "))
	}

	fmt.Fprintf(&b, "Requested time zone: %s.\n", c.Timezone)
	if c.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", c.Message)
	}

	return b.String()
}
