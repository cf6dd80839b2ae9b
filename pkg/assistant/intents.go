package assistant

import (
	"AdvisoryAssistant/pkg/knowledge"
	"AdvisoryAssistant/pkg/nlp"
)

type ResponseKind uint8

const (
	ResponseService ResponseKind = iota + 1
	ResponseGeneral
	ResponseGreeting
	ResponseThanks
)

// IntentSpec is one row of the dispatch table. Target is the service key
// for ResponseService rows and the general-info key for ResponseGeneral.
type IntentSpec struct {
	ID       IntentID
	Patterns []string
	Kind     ResponseKind
	Target   string
}

// DefaultIntents returns the dispatch table in priority order. The order
// only decides ties between equal scores.
func DefaultIntents() []IntentSpec {
	return []IntentSpec{
		{
			ID:       IntentResearch,
			Patterns: []string{"research", "research enhancement", "document analysis", "analyst", "filings", "transcripts"},
			Kind:     ResponseService,
			Target:   knowledge.ServiceResearch,
		},
		{
			ID:       IntentDueDiligence,
			Patterns: []string{"due diligence", "diligence", "ddq", "data room", "manager selection"},
			Kind:     ResponseService,
			Target:   knowledge.ServiceDueDiligence,
		},
		{
			ID:       IntentPortfolio,
			Patterns: []string{"portfolio", "portfolio analytics", "exposure", "attribution", "lp report"},
			Kind:     ResponseService,
			Target:   knowledge.ServicePortfolio,
		},
		{
			ID:       IntentMarketTrends,
			Patterns: []string{"market", "market trends", "market intelligence", "sentiment", "alternative data"},
			Kind:     ResponseService,
			Target:   knowledge.ServiceMarketTrends,
		},
		{
			ID:       IntentRegulatory,
			Patterns: []string{"regulatory", "regulation", "compliance", "form pf", "form adv"},
			Kind:     ResponseService,
			Target:   knowledge.ServiceRegulatory,
		},
		{
			ID:       IntentPricing,
			Patterns: []string{"pricing", "price", "cost", "how much", "fees", "subscription"},
			Kind:     ResponseGeneral,
			Target:   string(knowledge.KindPricing),
		},
		{
			ID:       IntentDemo,
			Patterns: []string{"demo", "demonstration", "trial", "schedule", "book a call", "consultation"},
			Kind:     ResponseGeneral,
			Target:   string(knowledge.KindDemo),
		},
		{
			ID:       IntentAbout,
			Patterns: []string{"about you", "about your company", "who are you", "your company", "your team", "what do you do"},
			Kind:     ResponseGeneral,
			Target:   string(knowledge.KindAbout),
		},
		{
			ID:       IntentGreeting,
			Patterns: []string{"hello", "hi", "hey", "hi there", "hey there", "good morning", "good afternoon", "good evening", "greetings"},
			Kind:     ResponseGreeting,
		},
		{
			ID:       IntentThanks,
			Patterns: []string{"thank", "thanks", "thank you", "appreciate", "cheers"},
			Kind:     ResponseThanks,
		},
	}
}

// DefaultServiceKeywords are the phrases that mark a message as being
// about a particular service when rebuilding conversation context.
func DefaultServiceKeywords() []nlp.KeywordSet {
	return []nlp.KeywordSet{
		{Key: knowledge.ServiceResearch, Keywords: []string{"research enhancement", "document analysis"}},
		{Key: knowledge.ServiceDueDiligence, Keywords: []string{"due diligence"}},
		{Key: knowledge.ServicePortfolio, Keywords: []string{"portfolio analytics", "portfolio"}},
		{Key: knowledge.ServiceMarketTrends, Keywords: []string{"market intelligence", "market trends"}},
		{Key: knowledge.ServiceRegulatory, Keywords: []string{"regulatory", "compliance"}},
	}
}

func toTable(specs []IntentSpec) nlp.Table {
	table := make(nlp.Table, 0, len(specs))
	for _, spec := range specs {
		table = append(table, nlp.Intent{ID: string(spec.ID), Patterns: spec.Patterns})
	}
	return table
}
