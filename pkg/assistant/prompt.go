package assistant

import (
	"fmt"
	"strings"

	"AdvisoryAssistant/pkg/knowledge"
)

// Prompt yields the system prompt sent with every remote completion.
type Prompt func() string

// KnowledgePrompt renders SystemPrompt from source on every call, so it
// follows corpus reloads.
func KnowledgePrompt(source knowledge.Source) Prompt {
	return func() string { return SystemPrompt(source) }
}

// SystemPrompt renders the knowledge base into instructions for a remote
// model so it answers from the same content as the local engine.
func SystemPrompt(source knowledge.Source) string {
	var b strings.Builder

	b.WriteString("You are the virtual assistant on the website of a technology advisory firm for alternative investment managers.\n")
	b.WriteString("Answer in at most three short paragraphs, only from the information below. ")
	b.WriteString("If the visitor asks for something not covered, suggest scheduling a demo.\n\n")

	if info, _ := source.GetGeneralInfo(string(knowledge.KindAbout)); info != nil {
		about, _ := info.(knowledge.About)
		fmt.Fprintf(&b, "## %s\n%s\n%s\n\n", about.Title(), about.CompanyInfo, bullets(about.Differentiators))
	}

	b.WriteString("## Services\n")
	for _, svc := range source.Services() {
		fmt.Fprintf(&b, "### %s\n%s\nCapabilities:\n%s\nBenefits:\n%s\n", svc.Title, svc.Description, bullets(svc.Capabilities), bullets(svc.Benefits))
		for _, faq := range svc.FAQ {
			fmt.Fprintf(&b, "Q: %s\nA: %s\n", faq.Question, faq.Answer)
		}
		b.WriteString("\n")
	}

	if info, _ := source.GetGeneralInfo(string(knowledge.KindPricing)); info != nil {
		pricing, _ := info.(knowledge.Pricing)
		fmt.Fprintf(&b, "## %s\n%s %s\n\n", pricing.Title(), pricing.Model, pricing.Starting)
	}
	if info, _ := source.GetGeneralInfo(string(knowledge.KindDemo)); info != nil {
		demo, _ := info.(knowledge.Demo)
		fmt.Fprintf(&b, "## %s\n%s %s\n", demo.Title(), demo.Process, demo.NextSteps)
	}

	return b.String()
}

// Role maps a history entry onto the user/assistant roles chat completion
// APIs expect.
func (m Message) Role() string {
	if m.Type == MessageBot {
		return "assistant"
	}
	return "user"
}
