package knowledge

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSearchKnowledgeBaseScoring(t *testing.T) {
	store := mustStore(t, fixtureCorpus())

	got := store.SearchKnowledgeBase("widget", 0)
	want := []SearchResult{
		{Type: ResultTypeService, Key: "alpha", Title: "Alpha Widget", Score: 10},
		{Type: ResultTypeGeneral, Key: "about", Title: "About Us", Score: 3},
		{Type: ResultTypeService, Key: "beta", Title: "Beta Gadget", Score: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("search results mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchKnowledgeBaseIsCaseInsensitive(t *testing.T) {
	store := mustStore(t, fixtureCorpus())

	lower := store.SearchKnowledgeBase("widget", 5)
	upper := store.SearchKnowledgeBase("WIDGET", 5)
	if diff := cmp.Diff(lower, upper); diff != "" {
		t.Errorf("case changed results (-lower +upper):\n%s", diff)
	}
}

func TestSearchKnowledgeBaseExcludesZeroScores(t *testing.T) {
	store := mustStore(t, fixtureCorpus())

	for _, q := range []string{"asdkjfh3298", "", "   "} {
		if got := store.SearchKnowledgeBase(q, 5); len(got) != 0 {
			t.Errorf("query %q: expected no results, got %+v", q, got)
		}
	}
}

func TestSearchKnowledgeBaseTruncatesAfterSorting(t *testing.T) {
	corpus := fixtureCorpus()
	corpus.Services = []ServiceRecord{
		{
			Key: "low", Title: "Low", Description: "nothing here",
			Capabilities: []string{"target once"}, Benefits: []string{"b"},
			FAQ: []FAQ{{Question: "q", Answer: "a"}},
		},
		{
			Key: "high", Title: "Target Service", Description: "all about the target",
			Capabilities: []string{"target"}, Benefits: []string{"target"},
			FAQ: []FAQ{{Question: "target?", Answer: "target."}},
		},
	}
	store := mustStore(t, corpus)

	got := store.SearchKnowledgeBase("target", 1)
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got[0].Key != "high" || got[0].Score != 10 {
		t.Errorf("expected the best match across the corpus, got %+v", got[0])
	}
}

func TestSearchKnowledgeBaseTiesKeepCorpusOrder(t *testing.T) {
	corpus := fixtureCorpus()
	corpus.Services = nil
	for _, key := range []string{"c", "a", "b"} {
		corpus.Services = append(corpus.Services, ServiceRecord{
			Key: key, Title: "Shared " + key, Description: "d",
			Capabilities: []string{"x"}, Benefits: []string{"y"},
			FAQ: []FAQ{{Question: "q", Answer: "a"}},
		})
	}
	store := mustStore(t, corpus)

	got := store.SearchKnowledgeBase("shared", 5)
	var keys []string
	for _, r := range got {
		keys = append(keys, r.Key)
	}
	if diff := cmp.Diff([]string{"c", "a", "b"}, keys); diff != "" {
		t.Errorf("tie order mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchKnowledgeBaseDefaultLimit(t *testing.T) {
	corpus := fixtureCorpus()
	corpus.Services = nil
	for i := 0; i < 7; i++ {
		corpus.Services = append(corpus.Services, ServiceRecord{
			Key: fmt.Sprintf("svc-%d", i), Title: "Common title", Description: "d",
			Capabilities: []string{"x"}, Benefits: []string{"y"},
			FAQ: []FAQ{{Question: "q", Answer: "a"}},
		})
	}
	store := mustStore(t, corpus)

	if got := store.SearchKnowledgeBase("common", 0); len(got) != DefaultLimit {
		t.Errorf("expected %d results, got %d", DefaultLimit, len(got))
	}
	if got := store.SearchKnowledgeBase("common", 10); len(got) != 7 {
		t.Errorf("expected 7 results, got %d", len(got))
	}
}

func TestSearchKnowledgeBaseMonotonic(t *testing.T) {
	base := fixtureCorpus()
	before := mustStore(t, base).SearchKnowledgeBase("widget", 5)

	richer := fixtureCorpus()
	richer.Services[1].Capabilities = append(richer.Services[1].Capabilities, "widget bridge")
	richer.Services[1].FAQ = append(richer.Services[1].FAQ, FAQ{Question: "Widget?", Answer: "widget"})
	after := mustStore(t, richer).SearchKnowledgeBase("widget", 5)

	score := func(results []SearchResult, key string) int {
		for _, r := range results {
			if r.Key == key {
				return r.Score
			}
		}
		return 0
	}

	if score(after, "beta") < score(before, "beta") {
		t.Errorf("score decreased: before %d, after %d", score(before, "beta"), score(after, "beta"))
	}
	if score(after, "beta") != 2+1+2+1 {
		t.Errorf("unexpected beta score %d", score(after, "beta"))
	}
}

func TestSearchKnowledgeBaseIsDeterministic(t *testing.T) {
	store := mustStore(t, DefaultCorpus())

	first := store.SearchKnowledgeBase("data", 5)
	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first, store.SearchKnowledgeBase("data", 5)); diff != "" {
			t.Fatalf("run %d differs (-first +got):\n%s", i, diff)
		}
	}
}

func TestSearchKnowledgeBaseCustomWeights(t *testing.T) {
	w := DefaultWeights()
	w.Title = 100
	store := mustStore(t, fixtureCorpus(), WithWeights(w))

	got := store.SearchKnowledgeBase("gadget", 5)
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %+v", got)
	}
	// title 100 + description 2 + one capability 1
	if got[0].Score != 103 {
		t.Errorf("expected score 103, got %d", got[0].Score)
	}
}

func TestSearchKnowledgeBaseGeneralRecords(t *testing.T) {
	store := mustStore(t, DefaultCorpus())

	got := store.SearchKnowledgeBase("per year", 5)
	if len(got) != 1 {
		t.Fatalf("expected only pricing to match, got %+v", got)
	}
	want := SearchResult{Type: ResultTypeGeneral, Key: "pricing", Title: "Pricing", Score: 2}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Errorf("pricing result mismatch (-want +got):\n%s", diff)
	}
}
