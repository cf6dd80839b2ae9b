package nlp

// LastMention scans texts in order and returns the key of the last keyword
// set mentioned. Within a single text, a later set overrides an earlier
// one. The empty string means no set was mentioned.
func LastMention(sets []KeywordSet, texts []string) string {
	last := ""
	for _, text := range texts {
		folded := Fold(text)
		for _, set := range sets {
			if ContainsAny(folded, set.Keywords...) {
				last = set.Key
			}
		}
	}
	return last
}
