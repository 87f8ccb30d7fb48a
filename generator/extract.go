package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON pulls a JSON object out of an untrusted text-generator
// response. Strategies are tried in order, first success wins: a fenced
// json block, any fenced block, the widest {...} substring, the raw text.
func ExtractJSON(response string) (map[string]any, error) {
	for _, candidate := range jsonCandidates(response) {
		var parsed map[string]any
		if err := json.Unmarshal([]byte(candidate), &parsed); err == nil {
			return parsed, nil
		}
	}
	return nil, fmt.Errorf("no parseable json object in response")
}

func jsonCandidates(response string) []string {
	var candidates []string
	if fenced, ok := fencedBlock(response, "```json"); ok {
		candidates = append(candidates, fenced)
	}
	if fenced, ok := fencedBlock(response, "```"); ok {
		candidates = append(candidates, fenced)
	}
	if braced, ok := widestBraces(response); ok {
		candidates = append(candidates, braced)
	}
	candidates = append(candidates, strings.TrimSpace(response))
	return candidates
}

func fencedBlock(response string, fence string) (string, bool) {
	start := strings.Index(response, fence)
	if start < 0 {
		return "", false
	}
	rest := response[start+len(fence):]
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

func widestBraces(response string) (string, bool) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return response[start : end+1], true
}
