package assistant

import (
	"time"

	"AdvisoryAssistant/internal/entity"
	engine "AdvisoryAssistant/pkg/assistant"
	"AdvisoryAssistant/pkg/handlerUtil"
	"AdvisoryAssistant/pkg/knowledge"
)

type HistoryMessage struct {
	Type    string `json:"type" validate:"required,oneof=user bot"`
	Content string `json:"content" validate:"max=4000"`
}

type ChatRequest struct {
	Message   string           `json:"message" validate:"required,max=2000"`
	SessionID string           `json:"session_id" validate:"omitempty,len=26"`
	History   []HistoryMessage `json:"history" validate:"omitempty,max=50,dive"`

	Typing bool `json:"-"`
}

type ChatResponse struct {
	SessionID string         `json:"session_id"`
	Reply     engine.Reply   `json:"reply"`
	Route     engine.Route   `json:"route"`
	Intent    string         `json:"intent,omitempty"`
	Context   engine.Context `json:"context"`
}

type SearchRequest struct {
	Query string `query:"q" validate:"required,max=200"`
	Limit int    `query:"limit" validate:"min=0,max=20"`
}

type SearchResponse struct {
	Query   string                   `json:"query"`
	Results []knowledge.SearchResult `json:"results"`
}

type ServicesResponse struct {
	Services []knowledge.ServiceRecord `json:"services"`
}

type GeneralInfoResponse struct {
	Key   string                `json:"key"`
	Title string                `json:"title"`
	Info  knowledge.GeneralInfo `json:"info"`
}

type AnalyticsRequest struct {
	Days int `query:"days" validate:"min=0,max=365"`
}

type AnalyticsResponse struct {
	Since time.Time `json:"since"`
	entity.ChatAnalytics
}

// Frame types exchanged over the chat websocket.
const (
	FrameTyping = "typing"
	FrameReply  = "reply"
	FrameError  = "error"
)

type ClientFrame struct {
	Message string           `json:"message"`
	History []HistoryMessage `json:"history,omitempty"`
}

type ServerFrame struct {
	Type      string        `json:"type"`
	SessionID string        `json:"session_id,omitempty"`
	Reply     *engine.Reply `json:"reply,omitempty"`
	Route     engine.Route  `json:"route,omitempty"`
	Error     string        `json:"error,omitempty"`

	Code   string                   `json:"code,omitempty"`
	Fields []handlerUtil.FieldError `json:"fields,omitempty"`
}

func ToMessages(history []HistoryMessage) []engine.Message {
	messages := make([]engine.Message, 0, len(history))
	for _, h := range history {
		messages = append(messages, engine.Message{
			Type:    engine.MessageType(h.Type),
			Content: h.Content,
		})
	}
	return messages
}
