package assistantHandler

import (
	"errors"
	"time"

	"AdvisoryAssistant/internal/api/assistant"
	"AdvisoryAssistant/internal/middleware"
	contextPkg "AdvisoryAssistant/pkg/context"
	"AdvisoryAssistant/pkg/handlerUtil"
	"AdvisoryAssistant/pkg/response"

	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	wsReadTimeout  = 5 * time.Minute
	wsWriteTimeout = 10 * time.Second
	wsTurnTimeout  = 30 * time.Second
	wsReadLimit    = 64 * 1024
	wsMaxHistory   = 50
)

// handleChatWebSocket runs one conversation per connection. The history is
// owned by the connection; a client frame carrying history replaces it.
func (h *AssistantHandler) handleChatWebSocket(c *websocket.Conn) {
	requestID, _ := c.Locals(middleware.RequestIDKey).(string)
	sessionID := c.Query("session_id")

	entry := h.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": sessionID,
	})
	entry.Info("Chat websocket client connected")
	defer entry.Info("Chat websocket client disconnected")

	if err := h.validator.Var(sessionID, "omitempty,len=26"); err != nil {
		_ = h.writeFrame(c, assistant.ServerFrame{Type: assistant.FrameError, Error: assistant.ErrInvalidSessionID.Error()})
		return
	}

	c.SetReadLimit(wsReadLimit)
	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			entry.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	var history []assistant.HistoryMessage

	for {
		if err := c.SetReadDeadline(time.Now().Add(wsReadTimeout)); err != nil {
			entry.Errorf("Error setting read deadline: %v", err)
			return
		}

		messageType, raw, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				entry.Warnf("Chat websocket error: %v", err)
			}
			return
		}

		if messageType != websocket.TextMessage {
			entry.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		var frame assistant.ClientFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			if err := h.writeError(c, errMalformedFrame); err != nil {
				return
			}
			continue
		}

		turnHistory := history
		if len(frame.History) > 0 {
			turnHistory = frame.History
		}

		req := assistant.ChatRequest{
			Message:   frame.Message,
			SessionID: sessionID,
			History:   turnHistory,
			Typing:    true,
		}
		if err := h.validator.Struct(req); err != nil {
			entry.WithError(err).Warn("Rejected chat websocket frame")
			if err := h.writeValidationError(c, err); err != nil {
				return
			}
			continue
		}
		history = turnHistory

		if err := h.writeFrame(c, assistant.ServerFrame{Type: assistant.FrameTyping, SessionID: sessionID}); err != nil {
			return
		}

		ctx, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), requestID), wsTurnTimeout)
		res, err := h.assistantService.Chat(ctx, req)
		cancel()
		if err != nil {
			entry.WithError(err).Warn("Chat turn failed")
			if err := h.writeError(c, err); err != nil {
				return
			}
			continue
		}

		sessionID = res.SessionID
		history = appendHistory(history,
			assistant.HistoryMessage{Type: "user", Content: frame.Message},
			assistant.HistoryMessage{Type: "bot", Content: res.Reply.Message},
		)

		reply := res.Reply
		if err := h.writeFrame(c, assistant.ServerFrame{
			Type:      assistant.FrameReply,
			SessionID: sessionID,
			Reply:     &reply,
			Route:     res.Route,
		}); err != nil {
			return
		}
	}
}

var errMalformedFrame = errors.New("malformed frame")

// writeError only exposes messages of domain errors.
func (h *AssistantHandler) writeError(c *websocket.Conn, err error) error {
	msg := "An unexpected error occurred"
	var respErr *response.Error
	if errors.As(err, &respErr) || errors.Is(err, errMalformedFrame) {
		msg = err.Error()
	}
	return h.writeFrame(c, assistant.ServerFrame{Type: assistant.FrameError, Error: msg})
}

// writeValidationError mirrors the HTTP validation error body. The
// connection keeps its previous history.
func (h *AssistantHandler) writeValidationError(c *websocket.Conn, err error) error {
	res := handlerUtil.NewValidationErrorResponse(err)
	return h.writeFrame(c, assistant.ServerFrame{
		Type:   assistant.FrameError,
		Error:  res.Error,
		Code:   res.Code,
		Fields: res.Fields,
	})
}

func (h *AssistantHandler) writeFrame(c *websocket.Conn, frame assistant.ServerFrame) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}

	if err := c.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
		h.log.Errorf("Error writing websocket frame: %v", err)
		return err
	}

	return c.SetWriteDeadline(time.Time{})
}

func appendHistory(history []assistant.HistoryMessage, messages ...assistant.HistoryMessage) []assistant.HistoryMessage {
	history = append(history, messages...)
	if over := len(history) - wsMaxHistory; over > 0 {
		history = append([]assistant.HistoryMessage(nil), history[over:]...)
	}
	return history
}
