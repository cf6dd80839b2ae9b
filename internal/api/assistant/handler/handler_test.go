package assistantHandler

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"AdvisoryAssistant/database/postgres"
	"AdvisoryAssistant/internal/api/assistant"
	assistantRepository "AdvisoryAssistant/internal/api/assistant/repository"
	assistantService "AdvisoryAssistant/internal/api/assistant/service"
	"AdvisoryAssistant/internal/middleware"
	engine "AdvisoryAssistant/pkg/assistant"
	jwtPkg "AdvisoryAssistant/pkg/jwt"
	"AdvisoryAssistant/pkg/knowledge"
	"AdvisoryAssistant/pkg/redis"
	"AdvisoryAssistant/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/go-cmp/cmp"
	gorilla "github.com/gorilla/websocket"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := postgres.Open(postgres.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := postgres.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store, err := knowledge.NewStore(knowledge.DefaultCorpus())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	svc := assistantService.NewAssistantService(
		log,
		assistantRepository.New(db, log),
		store,
		engine.New(store),
		time.Millisecond,
		redis.NewWithClient(client, 20, time.Hour),
		utils.New(),
	)

	app := fiber.New()
	mw := middleware.New(log)
	app.Use(mw.NewRequestIDMiddleware())
	New(log, validator.New(), mw, svc).Start(app.Group("/api/v1"))

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string, header http.Header) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)
	return res.StatusCode, raw
}

func TestHandleChat(t *testing.T) {
	app := newTestApp(t)

	status, raw := doJSON(t, app, http.MethodPost, "/api/v1/assistant/chat", `{"message":"hello"}`, nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d body=%s", status, raw)
	}

	var first assistant.ChatResponse
	if err := json.Unmarshal(raw, &first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if first.Route != engine.RouteIntent || first.Intent != "greeting" || len(first.SessionID) != 26 {
		t.Errorf("unexpected response %+v", first)
	}

	body := `{"message":"Tell me about portfolio analytics","session_id":"` + first.SessionID + `"}`
	if status, raw = doJSON(t, app, http.MethodPost, "/api/v1/assistant/chat", body, nil); status != http.StatusOK {
		t.Fatalf("status = %d body=%s", status, raw)
	}

	body = `{"message":"benefits?","session_id":"` + first.SessionID + `"}`
	status, raw = doJSON(t, app, http.MethodPost, "/api/v1/assistant/chat", body, nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d body=%s", status, raw)
	}

	var third assistant.ChatResponse
	if err := json.Unmarshal(raw, &third); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := engine.Context{LastService: knowledge.ServicePortfolio, Depth: engine.DepthBenefits}
	if diff := cmp.Diff(want, third.Context); diff != "" {
		t.Errorf("context mismatch (-want +got):\n%s", diff)
	}
	if third.Route != engine.RouteContext {
		t.Errorf("expected context route, got %s", third.Route)
	}
}

func TestHandleChatRejectsInvalidInput(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "missing message", body: `{}`, want: http.StatusBadRequest},
		{name: "too long", body: `{"message":"` + strings.Repeat("a", 2001) + `"}`, want: http.StatusBadRequest},
		{name: "bad session", body: `{"message":"hi","session_id":"short"}`, want: http.StatusBadRequest},
		{name: "bad history type", body: `{"message":"hi","history":[{"type":"system","content":"x"}]}`, want: http.StatusBadRequest},
		{name: "blank message", body: `{"message":"   "}`, want: http.StatusBadRequest},
		{name: "not json", body: `{`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, raw := doJSON(t, app, http.MethodPost, "/api/v1/assistant/chat", tt.body, nil)
			if status != tt.want {
				t.Errorf("status = %d, want %d (body=%s)", status, tt.want, raw)
			}
		})
	}
}

func TestHandleResetSession(t *testing.T) {
	app := newTestApp(t)

	id, _ := utils.New().NewULIDFromTimestamp(time.Now())
	if status, _ := doJSON(t, app, http.MethodDelete, "/api/v1/assistant/sessions/"+id, "", nil); status != http.StatusNoContent {
		t.Errorf("status = %d, want 204", status)
	}
	if status, _ := doJSON(t, app, http.MethodDelete, "/api/v1/assistant/sessions/nope", "", nil); status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
}

func TestKnowledgeRoutes(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name     string
		path     string
		want     int
		contains string
	}{
		{name: "list", path: "/api/v1/knowledge/services", want: http.StatusOK, contains: `"Research Enhancement"`},
		{name: "service", path: "/api/v1/knowledge/services/regulatory", want: http.StatusOK, contains: `"Regulatory Compliance"`},
		{name: "unknown service", path: "/api/v1/knowledge/services/crypto", want: http.StatusNotFound, contains: "service not found"},
		{name: "general", path: "/api/v1/knowledge/general/demo", want: http.StatusOK, contains: `"Request a Demo"`},
		{name: "unknown general", path: "/api/v1/knowledge/general/careers", want: http.StatusNotFound},
		{name: "search", path: "/api/v1/knowledge/search?q=kpi&limit=1", want: http.StatusOK, contains: `"key":"portfolio"`},
		{name: "search without query", path: "/api/v1/knowledge/search", want: http.StatusBadRequest},
		{name: "search limit too large", path: "/api/v1/knowledge/search?q=kpi&limit=100", want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, raw := doJSON(t, app, http.MethodGet, tt.path, "", nil)
			if status != tt.want {
				t.Fatalf("status = %d, want %d (body=%s)", status, tt.want, raw)
			}
			if tt.contains != "" && !bytes.Contains(raw, []byte(tt.contains)) {
				t.Errorf("body %s does not contain %s", raw, tt.contains)
			}
		})
	}
}

func TestHandleAnalytics(t *testing.T) {
	t.Setenv(middleware.AccessTokenSecret, "test-secret")
	app := newTestApp(t)

	for _, msg := range []string{"hello", "pricing"} {
		if status, raw := doJSON(t, app, http.MethodPost, "/api/v1/assistant/chat", `{"message":"`+msg+`"}`, nil); status != http.StatusOK {
			t.Fatalf("chat status = %d body=%s", status, raw)
		}
	}

	if status, _ := doJSON(t, app, http.MethodGet, "/api/v1/assistant/analytics", "", nil); status != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", status)
	}

	token, _, err := jwtPkg.Sign(map[string]interface{}{"id": "admin", "email": "ops@example.com", "role": "admin"}, time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	header := http.Header{"Authorization": []string{"Bearer " + token}}

	status, raw := doJSON(t, app, http.MethodGet, "/api/v1/assistant/analytics?days=1", "", header)
	if status != http.StatusOK {
		t.Fatalf("status = %d body=%s", status, raw)
	}

	var res assistant.AnalyticsResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.TotalTurns != 2 || res.TotalSessions != 2 {
		t.Errorf("unexpected totals %+v", res.ChatAnalytics)
	}

	if status, _ := doJSON(t, app, http.MethodGet, "/api/v1/assistant/analytics?days=400", "", header); status != http.StatusBadRequest {
		t.Errorf("expected 400 for out of range days, got %d", status)
	}
}

func TestChatWebSocket(t *testing.T) {
	app := newTestApp(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	conn, _, err := gorilla.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/api/v1/assistant/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	read := func() assistant.ServerFrame {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var frame assistant.ServerFrame
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatalf("read frame: %v", err)
		}
		return frame
	}

	if err := conn.WriteJSON(assistant.ClientFrame{Message: "Tell me about due diligence"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if frame := read(); frame.Type != assistant.FrameTyping {
		t.Fatalf("expected typing frame, got %+v", frame)
	}
	first := read()
	if first.Type != assistant.FrameReply || first.Reply == nil || len(first.SessionID) != 26 {
		t.Fatalf("unexpected reply frame %+v", first)
	}
	if !strings.HasPrefix(first.Reply.Message, "**Due Diligence Automation**") {
		t.Errorf("unexpected reply %q", first.Reply.Message)
	}

	if err := conn.WriteJSON(assistant.ClientFrame{Message: "faq"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	read()
	second := read()
	if second.Route != engine.RouteContext || second.SessionID != first.SessionID {
		t.Errorf("expected a context reply in the same session, got %+v", second)
	}
	if second.Reply == nil || !strings.HasPrefix(second.Reply.Message, "**Due Diligence Automation** frequently asked questions:") {
		t.Errorf("unexpected reply %+v", second.Reply)
	}

	if err := conn.WriteMessage(gorilla.TextMessage, []byte("{")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if frame := read(); frame.Type != assistant.FrameError || frame.Error != "malformed frame" {
		t.Errorf("expected malformed frame error, got %+v", frame)
	}
}

func TestChatWebSocketRejectedHistoryIsDiscarded(t *testing.T) {
	app := newTestApp(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	conn, _, err := gorilla.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/api/v1/assistant/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	read := func() assistant.ServerFrame {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var frame assistant.ServerFrame
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatalf("read frame: %v", err)
		}
		return frame
	}

	oversized := make([]assistant.HistoryMessage, 51)
	for i := range oversized {
		oversized[i] = assistant.HistoryMessage{Type: "user", Content: "Tell me about due diligence"}
	}
	if err := conn.WriteJSON(assistant.ClientFrame{Message: "hello", History: oversized}); err != nil {
		t.Fatalf("write: %v", err)
	}

	rejected := read()
	if rejected.Type != assistant.FrameError || rejected.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation error frame, got %+v", rejected)
	}
	if strings.Contains(rejected.Error, "Key: '") {
		t.Errorf("expected formatted validation message, got %q", rejected.Error)
	}
	if len(rejected.Fields) != 1 || rejected.Fields[0].Field != "History" || rejected.Fields[0].Rule != "max" {
		t.Errorf("unexpected field errors %+v", rejected.Fields)
	}

	if err := conn.WriteJSON(assistant.ClientFrame{Message: "What are the capabilities?"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if frame := read(); frame.Type != assistant.FrameTyping {
		t.Fatalf("expected typing frame, got %+v", frame)
	}
	reply := read()
	if reply.Type != assistant.FrameReply || reply.Reply == nil {
		t.Fatalf("expected reply frame, got %+v", reply)
	}
	if reply.Route == engine.RouteContext {
		t.Errorf("rejected history must not feed the conversation context, got %+v", reply)
	}
}

func TestChatWebSocketRequiresUpgrade(t *testing.T) {
	app := newTestApp(t)

	if status, _ := doJSON(t, app, http.MethodGet, "/api/v1/assistant/ws", "", nil); status != http.StatusUpgradeRequired {
		t.Errorf("expected 426, got %d", status)
	}
}
