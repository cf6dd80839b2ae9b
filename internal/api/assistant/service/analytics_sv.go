package assistantService

import (
	"context"
	"time"

	"AdvisoryAssistant/internal/api/assistant"
	contextPkg "AdvisoryAssistant/pkg/context"

	"github.com/sirupsen/logrus"
)

const topN = 10

func (s *assistantService) Analytics(ctx context.Context, since time.Time) (assistant.AnalyticsResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)
	since = since.UTC()

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return assistant.AnalyticsResponse{}, err
	}

	res := assistant.AnalyticsResponse{Since: since}

	res.TotalTurns, res.TotalSessions, err = repo.Turns.CountTurns(ctx, since)
	if err != nil {
		return assistant.AnalyticsResponse{}, err
	}
	if res.Routes, err = repo.Turns.CountByRoute(ctx, since); err != nil {
		return assistant.AnalyticsResponse{}, err
	}
	if res.TopIntents, err = repo.Turns.TopIntents(ctx, since, topN); err != nil {
		return assistant.AnalyticsResponse{}, err
	}
	if res.TopServices, err = repo.Turns.TopServices(ctx, since, topN); err != nil {
		return assistant.AnalyticsResponse{}, err
	}

	return res, nil
}
