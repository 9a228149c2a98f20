// Package services provides external service integrations and technical concerns like notifications and tokens
package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/aztec-interiors/fitflow/config"
)

// VisionService extracts text from scanned form images
type VisionService interface {
	// ExtractText runs OCR on the image at path and returns the full detected
	// text. An image with no text yields an empty string, not an error.
	ExtractText(ctx context.Context, imagePath string) (string, error)
}

// VisionServiceImpl implements VisionService against the Google Cloud Vision REST API
type VisionServiceImpl struct {
	config *config.VisionConfig
	client *http.Client
}

// NewVisionService creates a new vision service instance
func NewVisionService(cfg *config.VisionConfig) VisionService {
	return &VisionServiceImpl{
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type visionAnnotateRequest struct {
	Requests []visionImageRequest `json:"requests"`
}

type visionImageRequest struct {
	Image    visionImage     `json:"image"`
	Features []visionFeature `json:"features"`
}

type visionImage struct {
	Content string `json:"content"`
}

type visionFeature struct {
	Type string `json:"type"`
}

type visionAnnotateResponse struct {
	Responses []struct {
		TextAnnotations []struct {
			Description string `json:"description"`
		} `json:"textAnnotations"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

// ExtractText sends the image to the images:annotate endpoint with TEXT_DETECTION.
// The first annotation carries the full detected text.
func (s *VisionServiceImpl) ExtractText(ctx context.Context, imagePath string) (string, error) {
	content, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image file: %w", err)
	}

	payload := visionAnnotateRequest{
		Requests: []visionImageRequest{
			{
				Image:    visionImage{Content: base64.StdEncoding.EncodeToString(content)},
				Features: []visionFeature{{Type: "TEXT_DETECTION"}},
			},
		},
	}

	requestBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal vision request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/images:annotate?key=%s", s.config.Endpoint, s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send vision request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vision API returned status %d", resp.StatusCode)
	}

	var result visionAnnotateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode vision response: %w", err)
	}

	if len(result.Responses) == 0 {
		return "", nil
	}
	r := result.Responses[0]
	if r.Error != nil && r.Error.Message != "" {
		return "", fmt.Errorf("vision API error: %s", r.Error.Message)
	}
	if len(r.TextAnnotations) == 0 {
		return "", nil
	}
	return r.TextAnnotations[0].Description, nil
}

// MockVisionService implements VisionService for testing
type MockVisionService struct {
	Text string
	Err  error
}

func (m *MockVisionService) ExtractText(ctx context.Context, imagePath string) (string, error) {
	return m.Text, m.Err
}
