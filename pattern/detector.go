package pattern

import (
	"sort"

	"github.com/mimiclabs/mimic/config"
	"github.com/mimiclabs/mimic/logger"
	"github.com/mimiclabs/mimic/model"
	"github.com/mimiclabs/mimic/sequence"
	"go.uber.org/zap"
)

// SessionSequence pairs a session id with its symbolic sequence.
type SessionSequence struct {
	SessionId string
	Tokens    []string
}

// Detector finds repeated structure across session sequences. Stateless
// apart from its thresholds; safe for concurrent use.
type Detector struct {
	minSimilarity  float64
	minOccurrences int
}

func NewDetector(conf config.PatternConfig) *Detector {
	return &Detector{
		minSimilarity:  conf.MinSimilarity,
		minOccurrences: conf.MinOccurrences,
	}
}

// Detect returns patterns whose distinct-session count reaches the
// occurrence threshold, ranked by confidence. Occurrences count distinct
// sessions in the cluster, never candidate pairs.
func (d *Detector) Detect(sequences []SessionSequence) []model.Pattern {
	if len(sequences) < 2 {
		logger.Info("need at least 2 sessions to detect patterns", zap.Int("sessions", len(sequences)))
		return nil
	}

	var candidates []candidate
	for i := 0; i < len(sequences); i++ {
		for j := i + 1; j < len(sequences); j++ {
			similarity := sequence.Similarity(sequences[i].Tokens, sequences[j].Tokens)
			if similarity < d.minSimilarity {
				continue
			}
			candidates = append(candidates, candidate{
				sessions:   []string{sequences[i].SessionId, sequences[j].SessionId},
				template:   sequences[i].Tokens,
				similarity: similarity,
			})
		}
	}

	groups := d.group(candidates)

	var patterns []model.Pattern
	for _, g := range groups {
		if len(g.sessions) < d.minOccurrences {
			continue
		}
		p := model.Pattern{
			Sessions:    sortedSessions(g.sessions),
			Template:    g.template,
			Similarity:  g.similarity,
			Occurrences: len(g.sessions),
		}
		p.Confidence = d.confidence(p)
		patterns = append(patterns, p)
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Confidence > patterns[j].Confidence
	})
	logger.Info("pattern detection finished", zap.Int("sessions", len(sequences)), zap.Int("patterns", len(patterns)))
	return patterns
}

type candidate struct {
	sessions   []string
	template   []string
	similarity float64
}

type group struct {
	sessions   map[string]bool
	template   []string
	similarity float64
}

// group merges a candidate into the first existing group whose template is
// similar enough; otherwise the candidate seeds a new group.
func (d *Detector) group(candidates []candidate) []*group {
	var groups []*group
	for _, c := range candidates {
		merged := false
		for _, g := range groups {
			if sequence.Similarity(c.template, g.template) >= d.minSimilarity {
				for _, s := range c.sessions {
					g.sessions[s] = true
				}
				merged = true
				break
			}
		}
		if merged {
			continue
		}
		g := &group{
			sessions:   make(map[string]bool),
			template:   c.template,
			similarity: c.similarity,
		}
		for _, s := range c.sessions {
			g.sessions[s] = true
		}
		groups = append(groups, g)
	}
	return groups
}

// confidence rewards longer, more specific, more frequently repeated
// sequences. Heuristic, not statistically calibrated.
func (d *Detector) confidence(p model.Pattern) float64 {
	occurrenceBoost := float64(p.Occurrences-d.minOccurrences) * 0.1
	if occurrenceBoost > 0.3 {
		occurrenceBoost = 0.3
	}
	if occurrenceBoost < 0 {
		occurrenceBoost = 0
	}
	lengthBoost := float64(len(p.Template)) / 50.0
	if lengthBoost > 0.2 {
		lengthBoost = 0.2
	}
	confidence := p.Similarity + occurrenceBoost + lengthBoost
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

func sortedSessions(set map[string]bool) []string {
	sessions := make([]string, 0, len(set))
	for s := range set {
		sessions = append(sessions, s)
	}
	sort.Strings(sessions)
	return sessions
}
