package config

import (
	"os"
	"strconv"
	"time"

	"AdvisoryAssistant/pkg/knowledge"
)

const defaultTypingDelay = 800 * time.Millisecond

// weightsFromEnv overrides individual search weights with
// KNOWLEDGE_WEIGHT_TITLE, _DESCRIPTION, _CAPABILITY, _BENEFIT,
// _FAQ_QUESTION, _FAQ_ANSWER and _DIFFERENTIATOR.
func weightsFromEnv() knowledge.Weights {
	w := knowledge.DefaultWeights()

	for env, field := range map[string]*int{
		"KNOWLEDGE_WEIGHT_TITLE":          &w.Title,
		"KNOWLEDGE_WEIGHT_DESCRIPTION":    &w.Description,
		"KNOWLEDGE_WEIGHT_CAPABILITY":     &w.Capability,
		"KNOWLEDGE_WEIGHT_BENEFIT":        &w.Benefit,
		"KNOWLEDGE_WEIGHT_FAQ_QUESTION":   &w.FAQQuestion,
		"KNOWLEDGE_WEIGHT_FAQ_ANSWER":     &w.FAQAnswer,
		"KNOWLEDGE_WEIGHT_DIFFERENTIATOR": &w.Differentiator,
	} {
		if v, err := strconv.Atoi(os.Getenv(env)); err == nil && v >= 0 {
			*field = v
		}
	}

	return w
}

func typingDelayFromEnv() time.Duration {
	raw, ok := os.LookupEnv("CHAT_TYPING_DELAY")
	if !ok {
		return defaultTypingDelay
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return defaultTypingDelay
	}
	return d
}
