package assistantRepository

import (
	"context"
	"io"
	"testing"
	"time"

	"AdvisoryAssistant/database/postgres"
	"AdvisoryAssistant/internal/entity"

	"github.com/google/go-cmp/cmp"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := postgres.Open(postgres.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := postgres.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func seed(t *testing.T, client Client, turns ...entity.ChatTurn) {
	t.Helper()
	for _, turn := range turns {
		if err := client.Turns.CreateTurn(context.Background(), turn); err != nil {
			t.Fatalf("CreateTurn(%s): %v", turn.ID, err)
		}
	}
}

func TestCreateAndGetTurns(t *testing.T) {
	repo := New(newTestDB(t), quietLogger())
	client, err := repo.NewClient(false)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	base := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	want := []entity.ChatTurn{
		{ID: "t1", SessionID: "s1", UserMessage: "hello", Reply: "Hello!", Route: "intent", Intent: "greeting", Score: 5, CreatedAt: base},
		{ID: "t2", SessionID: "s1", UserMessage: "due diligence", Reply: "**Due Diligence Automation**", Route: "intent", Intent: "dueDiligence", Score: 22, LastService: "dueDiligence", CreatedAt: base.Add(time.Minute)},
	}
	seed(t, client, want[1], want[0])
	seed(t, client, entity.ChatTurn{ID: "t3", SessionID: "other", UserMessage: "x", Reply: "y", Route: "fallback", CreatedAt: base})

	got, err := client.Turns.GetTurnsBySession(context.Background(), "s1")
	if err != nil {
		t.Fatalf("GetTurnsBySession returned error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("turns mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyticsQueries(t *testing.T) {
	repo := New(newTestDB(t), quietLogger())
	client, err := repo.NewClient(false)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	now := time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC)
	old := now.Add(-30 * 24 * time.Hour)
	seed(t, client,
		entity.ChatTurn{ID: "a", SessionID: "s1", Route: "intent", Intent: "research", LastService: "research", CreatedAt: now},
		entity.ChatTurn{ID: "b", SessionID: "s1", Route: "context", LastService: "research", CreatedAt: now},
		entity.ChatTurn{ID: "c", SessionID: "s2", Route: "intent", Intent: "pricing", CreatedAt: now},
		entity.ChatTurn{ID: "d", SessionID: "s2", Route: "fallback", CreatedAt: now},
		entity.ChatTurn{ID: "e", SessionID: "s3", Route: "intent", Intent: "research", LastService: "research", CreatedAt: old},
	)

	since := now.Add(-24 * time.Hour)
	ctx := context.Background()

	turns, sessions, err := client.Turns.CountTurns(ctx, since)
	if err != nil {
		t.Fatalf("CountTurns returned error: %v", err)
	}
	if turns != 4 || sessions != 2 {
		t.Errorf("expected 4 turns in 2 sessions, got %d in %d", turns, sessions)
	}

	routes, err := client.Turns.CountByRoute(ctx, since)
	if err != nil {
		t.Fatalf("CountByRoute returned error: %v", err)
	}
	wantRoutes := []entity.RouteCount{
		{Route: "intent", Count: 2},
		{Route: "context", Count: 1},
		{Route: "fallback", Count: 1},
	}
	if diff := cmp.Diff(wantRoutes, routes); diff != "" {
		t.Errorf("routes mismatch (-want +got):\n%s", diff)
	}

	intents, err := client.Turns.TopIntents(ctx, since, 1)
	if err != nil {
		t.Fatalf("TopIntents returned error: %v", err)
	}
	if diff := cmp.Diff([]entity.IntentCount{{Intent: "pricing", Count: 1}}, intents); diff != "" {
		t.Errorf("intents mismatch (-want +got):\n%s", diff)
	}

	services, err := client.Turns.TopServices(ctx, since, 5)
	if err != nil {
		t.Fatalf("TopServices returned error: %v", err)
	}
	if diff := cmp.Diff([]entity.ServiceCount{{Service: "research", Count: 2}}, services); diff != "" {
		t.Errorf("services mismatch (-want +got):\n%s", diff)
	}
}

func TestTransactionRollback(t *testing.T) {
	repo := New(newTestDB(t), quietLogger())

	tx, err := repo.NewClient(true)
	if err != nil {
		t.Fatalf("NewClient(tx) returned error: %v", err)
	}
	seed(t, tx, entity.ChatTurn{ID: "r1", SessionID: "s1", Route: "intent", CreatedAt: time.Now().UTC()})
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback returned error: %v", err)
	}

	client, _ := repo.NewClient(false)
	got, err := client.Turns.GetTurnsBySession(context.Background(), "s1")
	if err != nil {
		t.Fatalf("GetTurnsBySession returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected rolled back turn to be gone, got %v", got)
	}
}
