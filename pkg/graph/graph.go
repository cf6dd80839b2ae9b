package graph

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/oauth2/microsoft"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultBaseURL = "https://graph.microsoft.com/v1.0"
	defaultScope   = "https://graph.microsoft.com/.default"
	graphTimeFmt   = "2006-01-02T15:04:05"
)

// ItfGraph books consultations straight into the organizer's Outlook
// calendar; Graph then sends the invitation itself.
type ItfGraph interface {
	CreateEvent(ctx context.Context, event Event) (CreatedEvent, error)
	CancelEvent(ctx context.Context, eventID string, comment string) error
}

type Config struct {
	TenantID       string
	ClientID       string
	ClientSecret   string
	OrganizerEmail string
	BaseURL        string
	TokenURL       string
}

type Attendee struct {
	Name  string
	Email string
}

type Event struct {
	TransactionID string
	Subject       string
	Body          string
	Start         time.Time
	End           time.Time
	Attendees     []Attendee
	OnlineMeeting bool
}

type CreatedEvent struct {
	ID      string `json:"id"`
	WebLink string `json:"webLink"`
	JoinURL string `json:"-"`
}

type graphClient struct {
	httpClient *http.Client
	baseURL    string
	organizer  string
}

// ConfigFromEnv reads GRAPH_TENANT_ID, GRAPH_CLIENT_ID,
// GRAPH_CLIENT_SECRET and GRAPH_ORGANIZER_EMAIL. ok is false unless all
// four are set.
func ConfigFromEnv() (Config, bool) {
	cfg := Config{
		TenantID:       os.Getenv("GRAPH_TENANT_ID"),
		ClientID:       os.Getenv("GRAPH_CLIENT_ID"),
		ClientSecret:   os.Getenv("GRAPH_CLIENT_SECRET"),
		OrganizerEmail: os.Getenv("GRAPH_ORGANIZER_EMAIL"),
		BaseURL:        os.Getenv("GRAPH_BASE_URL"),
	}

	ok := cfg.TenantID != "" && cfg.ClientID != "" && cfg.ClientSecret != "" && cfg.OrganizerEmail != ""
	return cfg, ok
}

func New(cfg Config) ItfGraph {
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = microsoft.AzureADEndpoint(cfg.TenantID).TokenURL
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
		Scopes:       []string{defaultScope},
	}

	return &graphClient{
		httpClient: cc.Client(context.Background()),
		baseURL:    baseURL,
		organizer:  cfg.OrganizerEmail,
	}
}

type dateTimeTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type itemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type emailAddress struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

type attendee struct {
	EmailAddress emailAddress `json:"emailAddress"`
	Type         string       `json:"type"`
}

type eventRequest struct {
	Subject               string           `json:"subject"`
	Body                  itemBody         `json:"body"`
	Start                 dateTimeTimeZone `json:"start"`
	End                   dateTimeTimeZone `json:"end"`
	Attendees             []attendee       `json:"attendees"`
	TransactionID         string           `json:"transactionId,omitempty"`
	IsOnlineMeeting       bool             `json:"isOnlineMeeting"`
	OnlineMeetingProvider string           `json:"onlineMeetingProvider,omitempty"`
}

type eventResponse struct {
	ID            string `json:"id"`
	WebLink       string `json:"webLink"`
	OnlineMeeting *struct {
		JoinURL string `json:"joinUrl"`
	} `json:"onlineMeeting"`
}

func toGraphTime(t time.Time) dateTimeTimeZone {
	return dateTimeTimeZone{DateTime: t.UTC().Format(graphTimeFmt), TimeZone: "UTC"}
}

func (g *graphClient) CreateEvent(ctx context.Context, event Event) (CreatedEvent, error) {
	req := eventRequest{
		Subject:       event.Subject,
		Body:          itemBody{ContentType: "text", Content: event.Body},
		Start:         toGraphTime(event.Start),
		End:           toGraphTime(event.End),
		TransactionID: event.TransactionID,
	}
	for _, a := range event.Attendees {
		req.Attendees = append(req.Attendees, attendee{
			EmailAddress: emailAddress{Address: a.Email, Name: a.Name},
			Type:         "required",
		})
	}
	if event.OnlineMeeting {
		req.IsOnlineMeeting = true
		req.OnlineMeetingProvider = "teamsForBusiness"
	}

	var res eventResponse
	if err := g.do(ctx, http.MethodPost, g.userPath("events"), req, &res); err != nil {
		return CreatedEvent{}, err
	}

	created := CreatedEvent{ID: res.ID, WebLink: res.WebLink}
	if res.OnlineMeeting != nil {
		created.JoinURL = res.OnlineMeeting.JoinURL
	}
	return created, nil
}

func (g *graphClient) CancelEvent(ctx context.Context, eventID string, comment string) error {
	body := map[string]string{"comment": comment}
	return g.do(ctx, http.MethodPost, g.userPath("events", eventID, "cancel"), body, nil)
}

func (g *graphClient) userPath(parts ...string) string {
	p := "/users/" + url.PathEscape(g.organizer)
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}

func (g *graphClient) do(ctx context.Context, method, path string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graph request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{Status: resp.StatusCode, Body: string(raw)}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("graph returned status %d: %s", e.Status, e.Body)
}
