package assistant

import (
	"fmt"

	"AdvisoryAssistant/pkg/knowledge"
)

const (
	greetingMessage = "Hello! I'm the virtual assistant for our advisory team. How can I help you today?"
	thanksMessage   = "You're welcome! Is there anything else I can help you with?"
	fallbackMessage = "I'm not sure I understood that. Could you rephrase it, or choose one of the options below?"
)

func greetingReply() Reply {
	return Reply{
		Message: greetingMessage,
		Options: []string{optionAbout, optionPricing, optionDemo},
	}
}

func thanksReply() Reply {
	return Reply{
		Message: thanksMessage,
		Options: []string{optionDemo, optionAbout},
	}
}

func fallbackReply() Reply {
	return Reply{
		Message: fallbackMessage,
		Options: []string{optionAbout, optionPricing, optionDemo},
	}
}

// generateGeneralResponse formats the about, demo and pricing records.
// Each kind has its own message shape; the demo reply also asks the widget
// to render the demo request form.
func (e *Engine) generateGeneralResponse(key string) Reply {
	info, ok := e.source.GetGeneralInfo(key)
	if !ok {
		return fallbackReply()
	}

	switch v := info.(type) {
	case knowledge.About:
		services := e.source.Services()
		titles := make([]string, 0, len(services))
		for _, svc := range services {
			titles = append(titles, svc.Title)
		}
		return Reply{
			Message: fmt.Sprintf("%s\n\nWhat sets us apart:\n%s", v.CompanyInfo, bullets(v.Differentiators)),
			Options: titles,
		}
	case knowledge.Demo:
		return Reply{
			Message: fmt.Sprintf("**%s**\n\n%s\n\n%s", v.Title(), v.Process, v.NextSteps),
			Form:    DemoRequestForm,
		}
	case knowledge.Pricing:
		return Reply{
			Message: fmt.Sprintf("**%s**\n\n%s\n\n%s", v.Title(), v.Model, v.Starting),
			Options: []string{optionDemo, optionAbout},
		}
	default:
		return fallbackReply()
	}
}
