package faq

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerScenario(t *testing.T) {
	corpus := []Entry{{Question: "How often should I change oil?", Answer: "Every 5000 miles."}}

	assert.Equal(t, "Every 5000 miles.", Answer("How often should I change oil?", corpus))
	assert.Equal(t, FallbackNotUnderstood, Answer("What is the capital of France?", corpus))
}

func TestAnswerFallbacks(t *testing.T) {
	corpus := []Entry{{Question: "How often should I change oil?", Answer: "Every 5000 miles."}}

	assert.Equal(t, FallbackNoAnswers, Answer("anything", nil))
	assert.Equal(t, FallbackNoAnswers, Answer("", []Entry{}))
	assert.Equal(t, FallbackNotUnderstood, Answer("", corpus))
	assert.Equal(t, FallbackNotUnderstood, Answer("? !", corpus))
}

func TestFindScoresAndTieBreak(t *testing.T) {
	corpus := []Entry{
		{Question: "oil change", Answer: "first"},
		{Question: "tire rotation", Answer: "second"},
	}
	m := Find("oil", corpus)
	require.True(t, m.Matched)
	assert.Equal(t, 0, m.Index)
	assert.InDelta(t, 0.6053485081062916, m.Score, 1e-9)

	dup := []Entry{
		{Question: "brake noise", Answer: "first"},
		{Question: "brake noise", Answer: "second"},
	}
	assert.Equal(t, "first", Answer("brake noise", dup))
}

func TestFindBelowThreshold(t *testing.T) {
	corpus := []Entry{
		{Question: "How often should I change the oil in my car?", Answer: "Every 5000 miles."},
		{Question: "When should I rotate my tires?", Answer: "Every 6000 miles."},
	}
	m := Find("car", corpus)
	assert.False(t, m.Matched)
	assert.InDelta(t, 0.2734501776527326, m.Score, 1e-9)
	assert.Equal(t, FallbackNotUnderstood, m.Answer)
}

func TestIdenticalQuestionReturnsItsAnswer(t *testing.T) {
	corpus := []Entry{
		{Question: "What does the check engine light mean?", Answer: "A fault code was stored."},
		{Question: "How do I book a service?", Answer: "Use Book Service."},
		{Question: "Do you service hybrids?", Answer: "Yes."},
	}
	for _, e := range corpus {
		m := Find(e.Question, corpus)
		assert.True(t, m.Matched)
		assert.Equal(t, e.Answer, m.Answer)
		assert.InDelta(t, 1.0, m.Score, 1e-9)
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("I'm a DIY_fan: Öl-Wechsel in 2 Tagen, 5000km!")
	want := []string{"diy_fan", "öl", "wechsel", "in", "tagen", "5000km"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tokenize = %v, want %v", got, want)
	}
}

func TestLoadCorpus(t *testing.T) {
	fromJSON, err := LoadCorpus(filepath.Join("testdata", "faq.json"))
	require.NoError(t, err)
	require.Len(t, fromJSON, 2)
	assert.Equal(t, "Every 5000 miles.", fromJSON[0].Answer)

	fromYAML, err := LoadCorpus(filepath.Join("testdata", "faq.yaml"))
	require.NoError(t, err)
	require.Len(t, fromYAML, 2)
	assert.Equal(t, "How do I book a service?", fromYAML[1].Question)

	_, err = LoadCorpus(filepath.Join(t.TempDir(), "nope.json"))
	assert.True(t, errors.Is(err, ErrCorpusNotFound))

	_, err = ParseCorpus([]byte("{not json"), ".json")
	assert.Error(t, err)
}
