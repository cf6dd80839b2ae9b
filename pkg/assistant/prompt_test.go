package assistant

import (
	"strings"
	"testing"

	"AdvisoryAssistant/pkg/knowledge"
)

type swappableSource struct {
	*knowledge.Store
}

func TestKnowledgePromptFollowsSource(t *testing.T) {
	first, err := knowledge.NewStore(knowledge.DefaultCorpus())
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	corpus := knowledge.DefaultCorpus()
	corpus.Services[0].Title = "Research Copilot"
	second, err := knowledge.NewStore(corpus)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	src := &swappableSource{Store: first}
	prompt := KnowledgePrompt(src)

	if got := prompt(); !strings.Contains(got, "### Research Enhancement") {
		t.Fatalf("expected the initial corpus in the prompt, got:\n%s", got)
	}

	src.Store = second
	got := prompt()
	if !strings.Contains(got, "### Research Copilot") || strings.Contains(got, "### Research Enhancement") {
		t.Errorf("expected the prompt to follow the swapped corpus, got:\n%s", got)
	}
	if got != SystemPrompt(second) {
		t.Error("expected KnowledgePrompt to render the same text as SystemPrompt")
	}
}
