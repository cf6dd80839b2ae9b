package knowledge

import (
	"sort"
	"strings"
)

// SearchKnowledgeBase scores every record by case-insensitive substring
// hits of query and returns at most limit results, best first. Records
// with equal scores keep corpus order: services first, then about, demo
// and pricing.
func (s *Store) SearchKnowledgeBase(query string, limit int) []SearchResult {
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []SearchResult{}
	}

	results := make([]SearchResult, 0, len(s.services)+len(s.general))

	for _, svc := range s.services {
		if score := s.scoreService(svc, q); score > 0 {
			results = append(results, SearchResult{
				Type:  ResultTypeService,
				Key:   svc.Key,
				Title: svc.Title,
				Score: score,
			})
		}
	}

	for _, info := range s.general {
		if score := s.scoreGeneral(info, q); score > 0 {
			results = append(results, SearchResult{
				Type:  ResultTypeGeneral,
				Key:   string(info.Kind()),
				Title: info.Title(),
				Score: score,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results
}

func (s *Store) scoreService(svc ServiceRecord, q string) int {
	score := 0
	if contains(svc.Title, q) {
		score += s.weights.Title
	}
	if contains(svc.Description, q) {
		score += s.weights.Description
	}
	score += s.weights.Capability * countContaining(svc.Capabilities, q)
	score += s.weights.Benefit * countContaining(svc.Benefits, q)
	for _, faq := range svc.FAQ {
		if contains(faq.Question, q) {
			score += s.weights.FAQQuestion
		}
		if contains(faq.Answer, q) {
			score += s.weights.FAQAnswer
		}
	}
	return score
}

func (s *Store) scoreGeneral(info GeneralInfo, q string) int {
	score := 0
	if contains(info.Title(), q) {
		score += s.weights.Title
	}

	switch v := info.(type) {
	case About:
		if contains(v.CompanyInfo, q) {
			score += s.weights.Description
		}
		score += s.weights.Differentiator * countContaining(v.Differentiators, q)
	case Demo:
		if contains(v.Process, q) {
			score += s.weights.Description
		}
		if contains(v.NextSteps, q) {
			score += s.weights.Description
		}
	case Pricing:
		if contains(v.Model, q) {
			score += s.weights.Description
		}
		if contains(v.Starting, q) {
			score += s.weights.Description
		}
	}

	return score
}

func contains(field, q string) bool {
	return strings.Contains(strings.ToLower(field), q)
}

func countContaining(fields []string, q string) int {
	n := 0
	for _, f := range fields {
		if contains(f, q) {
			n++
		}
	}
	return n
}
