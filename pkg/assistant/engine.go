package assistant

import (
	"AdvisoryAssistant/pkg/knowledge"
	"AdvisoryAssistant/pkg/nlp"
)

// DefaultContextWindow is how many trailing history messages are scanned
// for service mentions.
const DefaultContextWindow = 5

type Option func(*Engine)

func WithIntents(specs []IntentSpec) Option {
	return func(e *Engine) {
		e.intents = specs
	}
}

func WithServiceKeywords(sets []nlp.KeywordSet) Option {
	return func(e *Engine) {
		e.serviceKeywords = sets
	}
}

func WithContextWindow(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.window = n
		}
	}
}

// Engine is the local rule-based responder. It holds no per-conversation
// state and is safe for concurrent use.
type Engine struct {
	source          knowledge.Source
	intents         []IntentSpec
	table           nlp.Table
	specs           map[IntentID]IntentSpec
	serviceKeywords []nlp.KeywordSet
	window          int
}

func New(source knowledge.Source, opts ...Option) *Engine {
	e := &Engine{
		source:          source,
		intents:         DefaultIntents(),
		serviceKeywords: DefaultServiceKeywords(),
		window:          DefaultContextWindow,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.table = toTable(e.intents)
	e.specs = make(map[IntentID]IntentSpec, len(e.intents))
	for _, spec := range e.intents {
		e.specs[spec.ID] = spec
	}

	return e
}

// ExtractContext looks at the last few messages, bot replies included, and
// remembers the most recently mentioned service.
func (e *Engine) ExtractContext(history []Message) Context {
	start := len(history) - e.window
	if start < 0 {
		start = 0
	}

	texts := make([]string, 0, len(history)-start)
	for _, msg := range history[start:] {
		texts = append(texts, msg.Content)
	}

	return Context{LastService: nlp.LastMention(e.serviceKeywords, texts)}
}
