package consultationRepository

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"AdvisoryAssistant/database/postgres"
	"AdvisoryAssistant/internal/api/consultation"
	"AdvisoryAssistant/internal/entity"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()
	db, err := postgres.Open(postgres.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := postgres.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(db, log)
}

func sample(id string, created time.Time) entity.Consultation {
	return entity.Consultation{
		ID:          id,
		Name:        "Jane Doe",
		Email:       id + "@fund.example",
		Company:     "Northwind Capital",
		FirmType:    "hedge_fund",
		Interests:   []string{"research", "portfolio"},
		Timezone:    "UTC",
		PreferredAt: created.Add(48 * time.Hour),
		Duration:    45 * time.Minute,
		Status:      entity.ConsultationPending,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestCreateAndGetConsultation(t *testing.T) {
	client, err := newTestRepo(t).NewClient(false)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ctx := context.Background()

	want := sample("c1", time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	want.Phone = "+15555550100"
	if err := client.Consultations.CreateConsultation(ctx, want); err != nil {
		t.Fatalf("CreateConsultation: %v", err)
	}

	got, err := client.Consultations.GetConsultationByID(ctx, "c1")
	if err != nil {
		t.Fatalf("GetConsultationByID: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("consultation mismatch (-want +got):\n%s", diff)
	}

	if _, err := client.Consultations.GetConsultationByID(ctx, "missing"); !errors.Is(err, consultation.ErrConsultationNotFound) {
		t.Errorf("expected ErrConsultationNotFound, got %v", err)
	}
}

func TestCreateDuplicateConsultation(t *testing.T) {
	client, _ := newTestRepo(t).NewClient(false)
	ctx := context.Background()

	first := sample("c1", time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	if err := client.Consultations.CreateConsultation(ctx, first); err != nil {
		t.Fatalf("CreateConsultation: %v", err)
	}

	dup := first
	dup.ID = "c2"
	if err := client.Consultations.CreateConsultation(ctx, dup); !errors.Is(err, consultation.ErrDuplicateConsultation) {
		t.Errorf("expected ErrDuplicateConsultation, got %v", err)
	}
}

func TestListAndCountConsultations(t *testing.T) {
	client, _ := newTestRepo(t).NewClient(false)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	for i, id := range []string{"c1", "c2", "c3"} {
		c := sample(id, base.Add(time.Duration(i)*time.Hour))
		if id == "c2" {
			c.Status = entity.ConsultationEmailed
		}
		if err := client.Consultations.CreateConsultation(ctx, c); err != nil {
			t.Fatalf("CreateConsultation(%s): %v", id, err)
		}
	}

	all, err := client.Consultations.ListConsultations(ctx, ListFilter{Limit: 10})
	if err != nil {
		t.Fatalf("ListConsultations: %v", err)
	}
	var ids []string
	for _, c := range all {
		ids = append(ids, c.ID)
	}
	if diff := cmp.Diff([]string{"c3", "c2", "c1"}, ids); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	page, err := client.Consultations.ListConsultations(ctx, ListFilter{Limit: 1, Offset: 1})
	if err != nil || len(page) != 1 || page[0].ID != "c2" {
		t.Errorf("unexpected page %+v (%v)", page, err)
	}

	pending, err := client.Consultations.ListConsultations(ctx, ListFilter{Status: "pending", Limit: 10})
	if err != nil || len(pending) != 2 {
		t.Errorf("expected 2 pending, got %d (%v)", len(pending), err)
	}

	if total, err := client.Consultations.CountConsultations(ctx, ""); err != nil || total != 3 {
		t.Errorf("expected 3 in total, got %d (%v)", total, err)
	}
	if total, err := client.Consultations.CountConsultations(ctx, "emailed"); err != nil || total != 1 {
		t.Errorf("expected 1 emailed, got %d (%v)", total, err)
	}
}

func TestUpdates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	client, _ := repo.NewClient(false)
	c := sample("c1", base)
	if err := client.Consultations.CreateConsultation(ctx, c); err != nil {
		t.Fatalf("CreateConsultation: %v", err)
	}

	c.Status = entity.ConsultationScheduled
	c.Channel = entity.InviteChannelGraph
	c.EventID = "evt-1"
	c.InviteKey = "invites/2024/05/c1.ics"
	c.UpdatedAt = base.Add(time.Minute)
	if err := client.Consultations.UpdateDelivery(ctx, c); err != nil {
		t.Fatalf("UpdateDelivery: %v", err)
	}

	tx, err := repo.NewClient(true)
	if err != nil {
		t.Fatalf("NewClient(tx): %v", err)
	}
	if err := tx.Consultations.UpdateStatus(ctx, "c1", entity.ConsultationCompleted, base.Add(time.Hour)); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	got, err := client.Consultations.GetConsultationByID(ctx, "c1")
	if err != nil {
		t.Fatalf("GetConsultationByID: %v", err)
	}
	if got.Status != entity.ConsultationCompleted || got.EventID != "evt-1" || got.Channel != entity.InviteChannelGraph {
		t.Errorf("unexpected consultation %+v", got)
	}
	if !got.UpdatedAt.Equal(base.Add(time.Hour)) {
		t.Errorf("unexpected updated_at %s", got.UpdatedAt)
	}

	if err := client.Consultations.UpdateStatus(ctx, "missing", entity.ConsultationCancelled, base); !errors.Is(err, consultation.ErrConsultationNotFound) {
		t.Errorf("expected ErrConsultationNotFound, got %v", err)
	}
}
