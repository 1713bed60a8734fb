package analysis

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"

	"github.com/FeedbackLens/feedback-lens-backend/types"
)

var (
	offlineSentiments = []types.Sentiment{
		types.SentimentPositive,
		types.SentimentNeutral,
		types.SentimentNegative,
	}

	offlinePriorities = []types.Priority{
		types.PriorityP0,
		types.PriorityP1,
		types.PriorityP2,
		types.PriorityP3,
	}

	offlineTagVocabulary = []string{
		"usability", "performance", "bug", "feature", "ui",
		"api", "mobile", "desktop", "security", "integration",
	}

	offlineNextActions = []string{
		"Review with product team",
		"Schedule user interview",
		"Add to sprint backlog",
		"Escalate to engineering",
		"Collect more data",
	}
)

// OfflineProvider produces a structurally valid analysis without any network
// dependency. Every field, including tag selection, is a deterministic
// function of the input text, so repeated calls on the same text agree.
// Used when no API key is configured and as the fallback after a remote
// provider failure.
type OfflineProvider struct{}

// NewOfflineProvider creates the deterministic local analysis generator.
func NewOfflineProvider() *OfflineProvider {
	return &OfflineProvider{}
}

func (p *OfflineProvider) Name() string { return "offline" }

func (p *OfflineProvider) Analyze(_ context.Context, text string) (*types.FeedbackAnalysis, error) {
	// First 32 bits of the digest drive every selection below.
	sum := sha256.Sum256([]byte(text))
	h := binary.BigEndian.Uint32(sum[:4])

	sentiment := offlineSentiments[h%uint32(len(offlineSentiments))]
	priority := offlinePriorities[h%uint32(len(offlinePriorities))]
	tags := p.selectTags(h)

	summaries := []string{
		fmt.Sprintf("User feedback regarding %s experience with the product", sentiment),
		fmt.Sprintf("Feedback about %s and %s aspects", tags[0], tags[1]),
		fmt.Sprintf("User has concerns about %s priority issues", priority),
	}

	return &types.FeedbackAnalysis{
		Summary:    summaries[h%uint32(len(summaries))],
		Sentiment:  sentiment,
		Tags:       tags,
		Priority:   priority,
		NextAction: offlineNextActions[h%uint32(len(offlineNextActions))],
	}, nil
}

// selectTags shuffles the fixed vocabulary with a PRNG seeded from the text
// hash and takes 3 + h%3 entries, so the tag set is reproducible per text.
func (p *OfflineProvider) selectTags(h uint32) []string {
	shuffled := make([]string, len(offlineTagVocabulary))
	copy(shuffled, offlineTagVocabulary)

	rng := rand.New(rand.NewSource(int64(h)))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled[:3+h%3]
}
