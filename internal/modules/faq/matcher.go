package faq

const (
	// Threshold is the similarity a match must exceed.
	Threshold = 0.3

	FallbackNoAnswers     = "I'm sorry, I don't have any answers available at the moment."
	FallbackNotUnderstood = "I'm sorry, I don't understand that question. Please try asking something else."
)

// Match is the outcome of scoring a question against a corpus. Index is -1
// when the corpus is empty.
type Match struct {
	Answer  string  `json:"answer"`
	Index   int     `json:"index"`
	Score   float64 `json:"score"`
	Matched bool    `json:"matched"`
}

// Find vectorises the corpus questions together with question and returns
// the closest entry. Ties go to the earliest entry.
func Find(question string, corpus []Entry) Match {
	if len(corpus) == 0 {
		return Match{Answer: FallbackNoAnswers, Index: -1}
	}
	docs := make([]string, 0, len(corpus)+1)
	for _, e := range corpus {
		docs = append(docs, e.Question)
	}
	docs = append(docs, question)
	vecs := fitTransform(docs)
	query := vecs[len(vecs)-1]

	best, bestScore := 0, cosineSim(query, vecs[0])
	for i := 1; i < len(corpus); i++ {
		if s := cosineSim(query, vecs[i]); s > bestScore {
			best, bestScore = i, s
		}
	}
	if bestScore > Threshold {
		return Match{Answer: corpus[best].Answer, Index: best, Score: bestScore, Matched: true}
	}
	return Match{Answer: FallbackNotUnderstood, Index: best, Score: bestScore}
}

// Answer returns the stored answer for the closest question, or one of the
// fixed fallbacks.
func Answer(question string, corpus []Entry) string {
	return Find(question, corpus).Answer
}
