package graph

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type fakeGraph struct {
	t        *testing.T
	created  eventRequest
	cancels  []string
	failWith int
}

func (f *fakeGraph) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"tok","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/users/organizer@example.com/events", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			f.t.Errorf("unexpected authorization %q", got)
		}
		if f.failWith != 0 {
			w.WriteHeader(f.failWith)
			_, _ = io.WriteString(w, `{"error":{"code":"ErrorAccessDenied"}}`)
			return
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &f.created); err != nil {
			f.t.Errorf("decode event: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"evt-1","webLink":"https://outlook.example/evt-1","onlineMeeting":{"joinUrl":"https://teams.example/join"}}`)
	})
	mux.HandleFunc("/users/organizer@example.com/events/evt-1/cancel", func(w http.ResponseWriter, r *http.Request) {
		f.cancels = append(f.cancels, "evt-1")
		w.WriteHeader(http.StatusAccepted)
	})
	return mux
}

func newTestClient(t *testing.T, f *fakeGraph) ItfGraph {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	return New(Config{
		TenantID:       "tenant",
		ClientID:       "client",
		ClientSecret:   "secret",
		OrganizerEmail: "organizer@example.com",
		BaseURL:        srv.URL,
		TokenURL:       srv.URL + "/token",
	})
}

func TestCreateEvent(t *testing.T) {
	f := &fakeGraph{t: t}
	client := newTestClient(t, f)

	start := time.Date(2024, 6, 3, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	got, err := client.CreateEvent(context.Background(), Event{
		TransactionID: "c-1",
		Subject:       "Consultation",
		Body:          "Intro call",
		Start:         start,
		End:           start.Add(30 * time.Minute),
		Attendees:     []Attendee{{Name: "Jane Doe", Email: "jane@acme.example"}},
		OnlineMeeting: true,
	})
	if err != nil {
		t.Fatalf("CreateEvent returned error: %v", err)
	}

	want := CreatedEvent{ID: "evt-1", WebLink: "https://outlook.example/evt-1", JoinURL: "https://teams.example/join"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("created event mismatch (-want +got):\n%s", diff)
	}

	if f.created.Start != (dateTimeTimeZone{DateTime: "2024-06-03T09:00:00", TimeZone: "UTC"}) {
		t.Errorf("unexpected start %+v", f.created.Start)
	}
	if len(f.created.Attendees) != 1 || f.created.Attendees[0].EmailAddress.Address != "jane@acme.example" {
		t.Errorf("unexpected attendees %+v", f.created.Attendees)
	}
	if !f.created.IsOnlineMeeting || f.created.OnlineMeetingProvider != "teamsForBusiness" {
		t.Errorf("expected an online meeting, got %+v", f.created)
	}
}

func TestCreateEventAPIError(t *testing.T) {
	f := &fakeGraph{t: t, failWith: http.StatusForbidden}
	client := newTestClient(t, f)

	_, err := client.CreateEvent(context.Background(), Event{Start: time.Now(), End: time.Now().Add(time.Hour)})

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusForbidden {
		t.Errorf("expected a 403 APIError, got %v", err)
	}
}

func TestCancelEvent(t *testing.T) {
	f := &fakeGraph{t: t}
	client := newTestClient(t, f)

	if err := client.CancelEvent(context.Background(), "evt-1", "cancelled by admin"); err != nil {
		t.Fatalf("CancelEvent returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"evt-1"}, f.cancels); diff != "" {
		t.Errorf("cancels mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("GRAPH_TENANT_ID", "t")
	t.Setenv("GRAPH_CLIENT_ID", "c")
	t.Setenv("GRAPH_CLIENT_SECRET", "s")
	t.Setenv("GRAPH_ORGANIZER_EMAIL", "")

	if _, ok := ConfigFromEnv(); ok {
		t.Error("expected incomplete config to be reported")
	}

	t.Setenv("GRAPH_ORGANIZER_EMAIL", "o@example.com")
	if _, ok := ConfigFromEnv(); !ok {
		t.Error("expected complete config to be accepted")
	}
}
