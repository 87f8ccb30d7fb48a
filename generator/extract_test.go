package generator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractJSONEquivalentWrappings(t *testing.T) {
	payload := `{"workflow_name": "Weekly report", "confidence": 0.9}`
	responses := map[string]string{
		"fenced json block": "```json\n" + payload + "\n```",
		"plain fence":       "```\n" + payload + "\n```",
		"surrounding prose": "Sure, here is the workflow you asked for:\n" + payload + "\nLet me know if you need anything else.",
		"raw json":          payload,
	}

	var results []map[string]any
	for scenario, response := range responses {
		parsed, err := ExtractJSON(response)
		require.NoError(t, err, scenario)
		results = append(results, parsed)
	}
	for _, parsed := range results {
		require.Equal(t, results[0], parsed)
	}
}

func TestExtractJSONMalformed(t *testing.T) {
	_, err := ExtractJSON("I could not produce a workflow, sorry.")
	require.Error(t, err)

	_, err = ExtractJSON("{not json at all")
	require.Error(t, err)
}

func TestParseTimeSeconds(t *testing.T) {
	require.Equal(t, 30, ParseTimeSeconds("30 seconds"))
	require.Equal(t, 120, ParseTimeSeconds("2 minutes"))
	require.Equal(t, 90, ParseTimeSeconds("1.5 minutes"))
	require.Equal(t, 45, ParseTimeSeconds("45 sec"))
	require.Equal(t, 0, ParseTimeSeconds("about an hour"))
	require.Equal(t, 0, ParseTimeSeconds(""))
}
