// Package services provides external service integrations and technical concerns like notifications and tokens
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aztec-interiors/fitflow/config"
	"github.com/aztec-interiors/fitflow/models"
	"github.com/aztec-interiors/fitflow/utils"
)

// FormatterService structures raw OCR text into the survey form schema
type FormatterService interface {
	// StructureText maps free text onto the form columns. Every column is
	// present in the result; unknown values are nil. Checkbox fields come
	// back as a tick mark or nil, never free text.
	StructureText(ctx context.Context, rawText string) (map[string]*string, error)
}

// FormatterServiceImpl implements FormatterService against the OpenAI chat completions API
type FormatterServiceImpl struct {
	config *config.OpenAIConfig
	client *http.Client
}

// NewFormatterService creates a new formatter service instance
func NewFormatterService(cfg *config.OpenAIConfig) FormatterService {
	return &FormatterServiceImpl{
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

const formatterSystemPrompt = "Extract form data to JSON. Checkmarks printed on the blank template are not user input. Return only JSON with the requested fields."

// StructureText calls the model with the form schema and post-processes the
// reply into the fixed column set
func (s *FormatterServiceImpl) StructureText(ctx context.Context, rawText string) (map[string]*string, error) {
	prompt := fmt.Sprintf(
		"Extract data from this fitted-furniture survey form. Return ONLY valid JSON.\n\n"+
			"Rules:\n"+
			"1. Extract handwritten text for customer info and specifications\n"+
			"2. Checkbox fields: true only when the customer clearly ticked them\n"+
			"3. Return only JSON, no explanations\n\n"+
			"Fields to extract:\n%s\n\nRaw text:\n%s",
		strings.Join(models.FormColumns, ", "), rawText,
	)

	payload := chatCompletionRequest{
		Model: s.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: formatterSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.0,
		MaxTokens:   s.config.MaxTokens,
	}

	requestBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completion request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/chat/completions", s.config.Endpoint)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send completion request: %w", err)
	}
	defer resp.Body.Close()

	var result chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode completion response: %w", err)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("completion API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("completion API returned no choices")
	}

	reply := stripJSONFence(result.Choices[0].Message.Content)

	parsed, err := parseStructuredReply(reply)
	if err != nil {
		return nil, err
	}

	return CoerceFormData(parsed), nil
}

// parseStructuredReply decodes the model reply. The raw reply travels with
// the error so an unparsable response can be diagnosed from logs.
func parseStructuredReply(reply string) (map[string]any, error) {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(reply), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse structured reply: %w; raw reply: %q", err, reply)
	}
	return parsed, nil
}

// stripJSONFence removes a surrounding ```json code fence if present
func stripJSONFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// CoerceFormData normalizes a parsed model reply onto the form schema.
// Every form column appears in the result. Checkbox fields collapse to a
// tick mark when the value is affirmative and nil otherwise; other fields
// are trimmed strings or nil.
func CoerceFormData(parsed map[string]any) map[string]*string {
	out := make(map[string]*string, len(models.FormColumns))
	for _, column := range models.FormColumns {
		value, ok := parsed[column]
		if !ok || value == nil {
			out[column] = nil
			continue
		}

		if models.IsCheckboxField(column) {
			if isAffirmative(value) {
				tick := utils.CheckboxTick
				out[column] = &tick
			} else {
				out[column] = nil
			}
			continue
		}

		switch v := value.(type) {
		case string:
			trimmed := strings.TrimSpace(v)
			if trimmed == "" {
				out[column] = nil
			} else {
				out[column] = &trimmed
			}
		case bool:
			if v {
				s := "true"
				out[column] = &s
			} else {
				out[column] = nil
			}
		case float64:
			s := strings.TrimSuffix(fmt.Sprintf("%v", v), ".0")
			out[column] = &s
		default:
			s := fmt.Sprintf("%v", v)
			out[column] = &s
		}
	}
	return out
}

// isAffirmative reports whether a checkbox value counts as ticked.
// Only the provider's affirmative vocabulary ticks the box; every other
// value collapses to null.
func isAffirmative(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case utils.CheckboxTick, "checked", "true":
			return true
		}
		return false
	default:
		return false
	}
}

// MockFormatterService implements FormatterService for testing
type MockFormatterService struct {
	Data map[string]*string
	Err  error
}

func (m *MockFormatterService) StructureText(ctx context.Context, rawText string) (map[string]*string, error) {
	return m.Data, m.Err
}
