package assistant

import (
	"context"

	"AdvisoryAssistant/pkg/knowledge"
	"AdvisoryAssistant/pkg/nlp"
)

// GenerateLocalResponse answers one utterance from the knowledge base. It
// is total: every input, including the empty string, yields a reply.
func (e *Engine) GenerateLocalResponse(utterance string, history []Message) Reply {
	return e.Resolve(utterance, history).Reply
}

// Respond lets the engine be used wherever a Responder is expected.
func (e *Engine) Respond(_ context.Context, utterance string, history []Message) Resolution {
	return e.Resolve(utterance, history)
}

// Resolve is GenerateLocalResponse with the routing decision attached.
func (e *Engine) Resolve(utterance string, history []Message) Resolution {
	ctx := e.ExtractContext(history)
	folded := nlp.Fold(utterance)

	if ctx.LastService != "" {
		if depth, ok := followUpDepth(folded); ok {
			ctx.Depth = depth
			return Resolution{
				Reply:   e.GenerateServiceResponse(ctx.LastService, ctx),
				Route:   RouteContext,
				Context: ctx,
			}
		}
	}

	ranked := nlp.Rank(e.table, utterance)
	if best, ok := nlp.Top(ranked); ok {
		spec := e.specs[IntentID(best.Intent)]
		if spec.Kind == ResponseService {
			ctx.LastService = spec.Target
		}
		return Resolution{
			Reply:      e.handle(spec, ctx),
			Route:      RouteIntent,
			Intent:     spec.ID,
			Score:      best.Score,
			Context:    ctx,
			Candidates: ranked,
		}
	}

	if results := e.source.SearchKnowledgeBase(utterance, 1); len(results) > 0 {
		top := results[0]
		var reply Reply
		switch top.Type {
		case knowledge.ResultTypeService:
			ctx.LastService = top.Key
			reply = e.GenerateServiceResponse(top.Key, Context{LastService: top.Key, Depth: DepthOverview})
		default:
			reply = e.generateGeneralResponse(top.Key)
		}
		return Resolution{
			Reply:   reply,
			Route:   RouteSearch,
			Score:   top.Score,
			Context: ctx,
		}
	}

	return Resolution{
		Reply:   fallbackReply(),
		Route:   RouteFallback,
		Context: ctx,
	}
}

func (e *Engine) handle(spec IntentSpec, ctx Context) Reply {
	switch spec.Kind {
	case ResponseService:
		return e.GenerateServiceResponse(spec.Target, ctx)
	case ResponseGeneral:
		return e.generateGeneralResponse(spec.Target)
	case ResponseGreeting:
		return greetingReply()
	case ResponseThanks:
		return thanksReply()
	default:
		return fallbackReply()
	}
}

// followUpDepth recognises one-word follow-ups such as "capabilities?"
// that only make sense with a service already in context.
func followUpDepth(folded string) (Depth, bool) {
	switch {
	case nlp.ContainsAny(folded, "capabilities"):
		return DepthCapabilities, true
	case nlp.ContainsAny(folded, "benefits"):
		return DepthBenefits, true
	case nlp.ContainsAny(folded, "question", "faq"):
		return DepthFAQ, true
	default:
		return "", false
	}
}
