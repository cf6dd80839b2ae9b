package assistantService

import (
	"context"

	"AdvisoryAssistant/internal/api/assistant"
	"AdvisoryAssistant/pkg/knowledge"
)

func (s *assistantService) ListServices(_ context.Context) assistant.ServicesResponse {
	return assistant.ServicesResponse{Services: s.source.Services()}
}

func (s *assistantService) GetService(_ context.Context, key string) (knowledge.ServiceRecord, error) {
	svc, ok := s.source.GetServiceInfo(key)
	if !ok {
		return knowledge.ServiceRecord{}, assistant.ErrServiceNotFound
	}
	return svc, nil
}

func (s *assistantService) GetGeneralInfo(_ context.Context, key string) (assistant.GeneralInfoResponse, error) {
	info, ok := s.source.GetGeneralInfo(key)
	if !ok {
		return assistant.GeneralInfoResponse{}, assistant.ErrGeneralInfoNotFound
	}

	return assistant.GeneralInfoResponse{
		Key:   string(info.Kind()),
		Title: info.Title(),
		Info:  info,
	}, nil
}

func (s *assistantService) Search(_ context.Context, req assistant.SearchRequest) assistant.SearchResponse {
	return assistant.SearchResponse{
		Query:   req.Query,
		Results: s.source.SearchKnowledgeBase(req.Query, req.Limit),
	}
}
