package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/FeedbackLens/feedback-lens-backend/logger"
	"github.com/FeedbackLens/feedback-lens-backend/types"
	openai "github.com/sashabaranov/go-openai"
)

const openaiSystemPrompt = "You are a helpful assistant that returns only valid JSON."

const openaiPromptTemplate = `You are a **product feedback analyst**. Your sole function is to analyze the following feedback, focusing only on the product and user experience.

**CRITICAL INSTRUCTION: Redact or anonymize all Personally Identifiable Information (PII)**—such as names, email addresses, phone numbers, location data, or account numbers—from the feedback before generating any output. The analysis should be about the **issue or feature**, not the individual user.

Analyze the following feedback and return **ONLY** a valid JSON object with these exact fields:
{
  "summary": "A brief one-sentence summary of the **core issue or request** from the feedback",
  "sentiment": "positive|neutral|negative",
  "tags": ["tag1", "tag2", "tag3", "tag4", "tag5"],
  "priority": "P0|P1|P2|P3",
  "nextAction": "A recommended next action, ensuring all PII is scrubbed or generalized"
}

Priority guidelines:
- P0: Critical issues requiring immediate attention (security, data loss, system down)
- P1: High-priority issues affecting many users
- P2: Medium-priority issues or feature requests
- P3: Low-priority suggestions or nice-to-haves

Tags should be short, relevant nouns (max 5).

Feedback: %s

Return ONLY the JSON object, no additional text.`

// OpenAIProvider delegates analysis to an OpenAI chat-completion endpoint.
// Low temperature and a bounded completion length keep the output terse and
// deterministic-leaning. Any failure (network, timeout, parse, validation)
// is returned as an error; the analysis service handles fallback.
type OpenAIProvider struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIProvider creates an online provider authenticated with apiKey.
func NewOpenAIProvider(apiKey, model string, timeout time.Duration) *OpenAIProvider {
	return NewOpenAIProviderWithClient(openai.NewClient(apiKey), model, timeout)
}

// NewOpenAIProviderWithClient creates an online provider with a caller-supplied
// client. Used by tests to point at a stub server.
func NewOpenAIProviderWithClient(client *openai.Client, model string, timeout time.Duration) *OpenAIProvider {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &OpenAIProvider{
		client:  client,
		model:   model,
		timeout: timeout,
	}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Analyze(ctx context.Context, text string) (*types.FeedbackAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openaiSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(openaiPromptTemplate, text)},
		},
		Temperature: 0.3,
		MaxTokens:   300,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("empty response from model %s", p.model)
	}

	logger.GetLogger().Debugw("OpenAI analysis completed",
		"model", resp.Model,
		"completion_id", resp.ID,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"duration", time.Since(start),
	)

	analysis, err := parseAnalysisJSON(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	return analysis, nil
}

// parseAnalysisJSON decodes the model output strictly: it must be a single
// JSON object with exactly the five analysis fields, and the decoded value
// must satisfy the FeedbackAnalysis invariant.
func parseAnalysisJSON(content string) (*types.FeedbackAnalysis, error) {
	dec := json.NewDecoder(strings.NewReader(content))
	dec.DisallowUnknownFields()

	var analysis types.FeedbackAnalysis
	if err := dec.Decode(&analysis); err != nil {
		return nil, fmt.Errorf("response is not valid analysis JSON: %w", err)
	}
	if err := analysis.Validate(); err != nil {
		return nil, fmt.Errorf("response failed validation: %w", err)
	}
	return &analysis, nil
}
