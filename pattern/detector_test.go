package pattern

import (
	"testing"

	"github.com/mimiclabs/mimic/config"
	"github.com/stretchr/testify/require"
)

func testConfig() config.PatternConfig {
	return config.PatternConfig{MinSimilarity: 0.80, MinOccurrences: 3}
}

func TestDetectRecurringPattern(t *testing.T) {
	tokens := []string{"switch_window(Excel)", "click(100,200)", "type(4)", "type(2)", "click(300,50)"}
	sequences := []SessionSequence{
		{SessionId: "s1", Tokens: tokens},
		{SessionId: "s2", Tokens: tokens},
		{SessionId: "s3", Tokens: tokens},
	}

	patterns := NewDetector(testConfig()).Detect(sequences)
	require.Len(t, patterns, 1)
	require.Equal(t, 3, patterns[0].Occurrences)
	require.ElementsMatch(t, []string{"s1", "s2", "s3"}, patterns[0].Sessions)
	require.Equal(t, tokens, patterns[0].Template)
	require.Equal(t, 1.0, patterns[0].Similarity)
}

func TestDetectBelowThreshold(t *testing.T) {
	sequences := []SessionSequence{
		{SessionId: "s1", Tokens: []string{"click(1,1)", "type(a)", "type(b)", "type(c)"}},
		{SessionId: "s2", Tokens: []string{"click(9,9)", "type(x)", "click(2,2)", "type(z)"}},
	}

	patterns := NewDetector(testConfig()).Detect(sequences)
	require.Empty(t, patterns)
}

func TestDetectTooFewOccurrences(t *testing.T) {
	tokens := []string{"click(1,1)", "type(a)"}
	sequences := []SessionSequence{
		{SessionId: "s1", Tokens: tokens},
		{SessionId: "s2", Tokens: tokens},
	}

	patterns := NewDetector(testConfig()).Detect(sequences)
	require.Empty(t, patterns)
}

func TestDetectConfidence(t *testing.T) {
	tokens := []string{"click(1,1)", "type(a)", "type(b)", "type(c)", "type(d)"}
	sequences := []SessionSequence{
		{SessionId: "s1", Tokens: tokens},
		{SessionId: "s2", Tokens: tokens},
		{SessionId: "s3", Tokens: tokens},
	}

	patterns := NewDetector(testConfig()).Detect(sequences)
	require.Len(t, patterns, 1)
	// similarity 1.0 + occurrence boost 0 + length boost 5/50, capped at 1.0
	require.Equal(t, 1.0, patterns[0].Confidence)
}

func TestDetectSingleSession(t *testing.T) {
	patterns := NewDetector(testConfig()).Detect([]SessionSequence{{SessionId: "s1", Tokens: []string{"type(a)"}}})
	require.Empty(t, patterns)
}
