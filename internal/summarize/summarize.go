// Package summarize is a small extractive summarizer: sentences are ranked
// by the frequency of the words they contain and the top ones are returned
// in their original order. Good enough to shrink resumes and job
// descriptions before prompting the letter drafter.
package summarize

import (
	"regexp"
	"sort"
	"strings"
)

var (
	sentenceEnd = regexp.MustCompile(`[.!?]+\s+`)
	wordRe      = regexp.MustCompile(`[a-zA-Z]{2,}`)
)

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "are": true, "you": true, "your": true, "will": true,
	"have": true, "has": true, "our": true, "from": true, "not": true,
	"but": true, "all": true, "can": true, "was": true, "were": true,
	"their": true, "they": true, "them": true, "its": true, "into": true,
}

// Text returns an extractive summary of at most maxSentences sentences.
// Short inputs come back unchanged.
func Text(s string, maxSentences int) string {
	if maxSentences <= 0 {
		return ""
	}

	sentences := splitSentences(s)
	if len(sentences) <= maxSentences {
		return strings.TrimSpace(s)
	}

	freq := make(map[string]int)
	for _, sent := range sentences {
		for _, w := range wordRe.FindAllString(strings.ToLower(sent), -1) {
			if !stopwords[w] {
				freq[w]++
			}
		}
	}

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, 0, len(sentences))
	for i, sent := range sentences {
		words := wordRe.FindAllString(strings.ToLower(sent), -1)
		if len(words) == 0 {
			continue
		}
		total := 0
		for _, w := range words {
			total += freq[w]
		}
		ranked = append(ranked, scored{idx: i, score: float64(total) / float64(len(words))})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > maxSentences {
		ranked = ranked[:maxSentences]
	}

	//restore original order
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].idx < ranked[j].idx })

	parts := make([]string, 0, len(ranked))
	for _, r := range ranked {
		parts = append(parts, strings.TrimSpace(sentences[r.idx]))
	}
	return strings.Join(parts, " ")
}

func splitSentences(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var out []string
	last := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(s, -1) {
		out = append(out, s[last:loc[1]])
		last = loc[1]
	}
	if last < len(s) {
		out = append(out, s[last:])
	}
	return out
}
