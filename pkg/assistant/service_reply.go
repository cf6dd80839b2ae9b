package assistant

import (
	"fmt"
	"strings"
)

const overviewCapabilities = 3

const (
	optionCapabilities = "What are the capabilities?"
	optionBenefits     = "What are the benefits?"
	optionFAQ          = "Frequently asked questions"
	optionHowItWorks   = "Common questions about how it works"
	optionDemo         = "Schedule a demo"
	optionAbout        = "Tell me about your company"
	optionPricing      = "Pricing information"
)

// GenerateServiceResponse describes one service at the depth requested in
// ctx. An unknown key yields a reply listing every service instead.
func (e *Engine) GenerateServiceResponse(key string, ctx Context) Reply {
	svc, ok := e.source.GetServiceInfo(key)
	if !ok {
		return e.serviceNotFound()
	}

	switch ctx.Depth {
	case DepthCapabilities:
		return Reply{
			Message: fmt.Sprintf("**%s** capabilities:\n\n%s", svc.Title, bullets(svc.Capabilities)),
			Options: []string{optionBenefits, optionHowItWorks, optionDemo},
		}
	case DepthBenefits:
		return Reply{
			Message: fmt.Sprintf("**%s** benefits:\n\n%s", svc.Title, bullets(svc.Benefits)),
			Options: []string{optionCapabilities, optionHowItWorks, optionDemo},
		}
	case DepthFAQ:
		var b strings.Builder
		fmt.Fprintf(&b, "**%s** frequently asked questions:", svc.Title)
		for _, faq := range svc.FAQ {
			fmt.Fprintf(&b, "\n\n**Q: %s**\nA: %s", faq.Question, faq.Answer)
		}
		return Reply{
			Message: b.String(),
			Options: []string{optionCapabilities, optionDemo},
		}
	default:
		caps := svc.Capabilities
		if len(caps) > overviewCapabilities {
			caps = caps[:overviewCapabilities]
		}
		return Reply{
			Message: fmt.Sprintf("**%s**\n\n%s\n\nKey capabilities include:\n%s", svc.Title, svc.Description, bullets(caps)),
			Options: []string{optionCapabilities, optionBenefits, optionFAQ, optionDemo},
		}
	}
}

func (e *Engine) serviceNotFound() Reply {
	services := e.source.Services()
	titles := make([]string, 0, len(services))
	for _, svc := range services {
		titles = append(titles, svc.Title)
	}

	return Reply{
		Message: "I couldn't find information about that service. Here are the services we offer:",
		Options: titles,
	}
}

func bullets(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "• "+item)
	}
	return strings.Join(lines, "\n")
}
