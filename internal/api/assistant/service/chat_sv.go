package assistantService

import (
	"context"
	"fmt"
	"strings"

	"AdvisoryAssistant/internal/api/assistant"
	"AdvisoryAssistant/internal/entity"
	engine "AdvisoryAssistant/pkg/assistant"
	contextPkg "AdvisoryAssistant/pkg/context"
	"AdvisoryAssistant/pkg/nlp"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

func (s *assistantService) Chat(ctx context.Context, req assistant.ChatRequest) (assistant.ChatResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	ctx, span := tracer.Start(ctx, "assistant.chat")
	defer span.End()

	if strings.TrimSpace(req.Message) == "" {
		return assistant.ChatResponse{}, assistant.ErrEmptyMessage
	}

	if req.SessionID != "" && !s.utils.IsULID(req.SessionID) {
		return assistant.ChatResponse{}, assistant.ErrInvalidSessionID
	}

	sessionID := req.SessionID
	if sessionID == "" {
		id, err := s.utils.NewULIDFromTimestamp(s.now())
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to generate session id")
			return assistant.ChatResponse{}, err
		}
		sessionID = id
	}

	history := assistant.ToMessages(req.History)
	if len(history) == 0 && req.SessionID != "" {
		history = s.loadHistory(ctx, requestID, sessionID)
	}

	responder := s.responder
	if req.Typing {
		responder = s.typing
	}

	res := responder.Respond(ctx, req.Message, history)

	span.SetAttributes(
		attribute.String("assistant.session_id", sessionID),
		attribute.String("assistant.route", string(res.Route)),
		attribute.String("assistant.intent", string(res.Intent)),
		attribute.Int("assistant.score", res.Score),
	)

	s.log.WithFields(logrus.Fields{
		"request_id":   requestID,
		"session_id":   sessionID,
		"route":        res.Route,
		"intent":       res.Intent,
		"score":        res.Score,
		"last_service": res.Context.LastService,
		"candidates":   candidateSummary(res.Candidates),
	}).Debug("Resolved chat turn")

	s.saveHistory(ctx, requestID, sessionID, req.Message, res.Reply.Message)
	s.recordTurn(ctx, requestID, sessionID, req.Message, res)

	return assistant.ChatResponse{
		SessionID: sessionID,
		Reply:     res.Reply,
		Route:     res.Route,
		Intent:    string(res.Intent),
		Context:   res.Context,
	}, nil
}

// candidateSummary renders ranked intents as "intent=score" pairs.
func candidateSummary(results []nlp.IntentResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("%s=%d", r.Intent, r.Score))
	}
	return strings.Join(parts, ",")
}

func (s *assistantService) ResetSession(ctx context.Context, sessionID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	if !s.utils.IsULID(sessionID) {
		return assistant.ErrInvalidSessionID
	}

	if err := s.history.DeleteHistory(ctx, sessionID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to delete chat history")
		return err
	}

	return nil
}

// loadHistory never fails the turn: a missing or unreachable history
// store just means the engine answers without context.
func (s *assistantService) loadHistory(ctx context.Context, requestID, sessionID string) []engine.Message {
	history, err := s.history.GetHistory(ctx, sessionID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("Failed to load chat history, continuing without context")
		return nil
	}
	return history
}

func (s *assistantService) saveHistory(ctx context.Context, requestID, sessionID, utterance, reply string) {
	err := s.history.AppendHistory(ctx, sessionID,
		engine.Message{Type: engine.MessageUser, Content: utterance},
		engine.Message{Type: engine.MessageBot, Content: reply},
	)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("Failed to save chat history")
	}
}

func (s *assistantService) recordTurn(ctx context.Context, requestID, sessionID, utterance string, res engine.Resolution) {
	now := s.now().UTC()

	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to generate chat turn id")
		return
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to create repository client")
		return
	}

	err = repo.Turns.CreateTurn(ctx, entity.ChatTurn{
		ID:          id,
		SessionID:   sessionID,
		UserMessage: utterance,
		Reply:       res.Reply.Message,
		Route:       string(res.Route),
		Intent:      string(res.Intent),
		Score:       res.Score,
		LastService: res.Context.LastService,
		CreatedAt:   now,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("Failed to record chat turn")
	}
}
