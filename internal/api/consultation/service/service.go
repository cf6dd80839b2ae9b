package consultationService

import (
	"context"
	"time"

	"AdvisoryAssistant/internal/api/consultation"
	consultationRepository "AdvisoryAssistant/internal/api/consultation/repository"
	"AdvisoryAssistant/internal/entity"
	"AdvisoryAssistant/pkg/graph"
	"AdvisoryAssistant/pkg/knowledge"
	"AdvisoryAssistant/pkg/s3"
	"AdvisoryAssistant/pkg/smtp"
	"AdvisoryAssistant/pkg/utils"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("AdvisoryAssistant/internal/api/consultation/service")

type IConsultationService interface {
	Create(ctx context.Context, req consultation.CreateConsultationRequest) (consultation.CreateConsultationResponse, error)
	Get(ctx context.Context, id string) (entity.Consultation, error)
	List(ctx context.Context, req consultation.ListConsultationsRequest) (consultation.ListConsultationsResponse, error)
	Invite(ctx context.Context, id string) (consultation.InviteFile, error)
	UpdateStatus(ctx context.Context, id string, req consultation.UpdateStatusRequest) (entity.Consultation, error)
}

// Delivery holds the invite channels. Graph and Storage are nil when not
// configured; Mailer reports its own state through Configured.
type Delivery struct {
	Graph          graph.ItfGraph
	Mailer         smtp.ItfSmtp
	Storage        s3.ItfS3
	OrganizerName  string
	OrganizerEmail string
}

type consultationService struct {
	log      *logrus.Logger
	repo     consultationRepository.Repository
	source   knowledge.Source
	delivery Delivery
	utils    utils.IUtils
	now      func() time.Time
}

func NewConsultationService(
	log *logrus.Logger,
	repo consultationRepository.Repository,
	source knowledge.Source,
	delivery Delivery,
	utils utils.IUtils,
) IConsultationService {
	return &consultationService{
		log:      log,
		repo:     repo,
		source:   source,
		delivery: delivery,
		utils:    utils,
		now:      time.Now,
	}
}

func (s *consultationService) mailerReady() bool {
	return s.delivery.Mailer != nil && s.delivery.Mailer.Configured()
}
