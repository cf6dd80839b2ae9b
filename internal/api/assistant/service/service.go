package assistantService

import (
	"context"
	"time"

	"AdvisoryAssistant/internal/api/assistant"
	assistantRepository "AdvisoryAssistant/internal/api/assistant/repository"
	engine "AdvisoryAssistant/pkg/assistant"
	"AdvisoryAssistant/pkg/knowledge"
	"AdvisoryAssistant/pkg/redis"
	"AdvisoryAssistant/pkg/utils"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("AdvisoryAssistant/internal/api/assistant/service")

type IAssistantService interface {
	Chat(ctx context.Context, req assistant.ChatRequest) (assistant.ChatResponse, error)
	ResetSession(ctx context.Context, sessionID string) error
	ListServices(ctx context.Context) assistant.ServicesResponse
	GetService(ctx context.Context, key string) (knowledge.ServiceRecord, error)
	GetGeneralInfo(ctx context.Context, key string) (assistant.GeneralInfoResponse, error)
	Search(ctx context.Context, req assistant.SearchRequest) assistant.SearchResponse
	Analytics(ctx context.Context, since time.Time) (assistant.AnalyticsResponse, error)
}

type assistantService struct {
	log       *logrus.Logger
	repo      assistantRepository.Repository
	source    knowledge.Source
	responder engine.Responder
	typing    engine.Responder
	history   redis.IRedis
	utils     utils.IUtils
	now       func() time.Time
}

// NewAssistantService wires the chat core to session storage and turn
// recording. typingDelay only applies to requests flagged as Typing.
func NewAssistantService(
	log *logrus.Logger,
	repo assistantRepository.Repository,
	source knowledge.Source,
	responder engine.Responder,
	typingDelay time.Duration,
	history redis.IRedis,
	utils utils.IUtils,
) IAssistantService {
	return &assistantService{
		log:       log,
		repo:      repo,
		source:    source,
		responder: responder,
		typing:    engine.WithTypingDelay(responder, typingDelay),
		history:   history,
		utils:     utils,
		now:       time.Now,
	}
}
