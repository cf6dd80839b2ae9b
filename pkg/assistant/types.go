package assistant

import "AdvisoryAssistant/pkg/nlp"

type MessageType string

const (
	MessageUser MessageType = "user"
	MessageBot  MessageType = "bot"
)

// Message is one entry of the caller-owned conversation history. The
// engine only reads it.
type Message struct {
	Type    MessageType `json:"type"`
	Content string      `json:"content"`
}

// Reply is what the chat widget renders: text, optional quick replies and
// optionally a form to show.
type Reply struct {
	Message string   `json:"message"`
	Options []string `json:"options,omitempty"`
	Form    string   `json:"form,omitempty"`
}

type Depth string

const (
	DepthOverview     Depth = "overview"
	DepthCapabilities Depth = "capabilities"
	DepthBenefits     Depth = "benefits"
	DepthFAQ          Depth = "faq"
)

// Context is rebuilt from history on every turn.
type Context struct {
	LastService string `json:"last_service,omitempty"`
	Depth       Depth  `json:"depth,omitempty"`
}

type IntentID string

const (
	IntentResearch     IntentID = "research"
	IntentDueDiligence IntentID = "dueDiligence"
	IntentPortfolio    IntentID = "portfolio"
	IntentMarketTrends IntentID = "marketTrends"
	IntentRegulatory   IntentID = "regulatory"
	IntentPricing      IntentID = "pricing"
	IntentDemo         IntentID = "demo"
	IntentAbout        IntentID = "about"
	IntentGreeting     IntentID = "greeting"
	IntentThanks       IntentID = "thanks"
)

// Route records which branch of the dispatcher produced a reply.
type Route string

const (
	RouteContext  Route = "context"
	RouteIntent   Route = "intent"
	RouteSearch   Route = "search"
	RouteFallback Route = "fallback"
	RouteRemote   Route = "remote"
)

type Resolution struct {
	Reply   Reply    `json:"reply"`
	Route   Route    `json:"route"`
	Intent  IntentID `json:"intent,omitempty"`
	Score   int      `json:"score"`
	Context Context  `json:"context"`

	// Candidates holds every intent that scored, in table order. Only the
	// intent route sets it.
	Candidates []nlp.IntentResult `json:"candidates,omitempty"`
}

const DemoRequestForm = "demo-request"
