package services

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

const saplingEndpoint = "https://api.sapling.ai/api/v1/aidetect"

// Detector scores how likely a submission is AI-generated, via the Sapling
// API. Detection is best-effort: a missing key or a failed call yields a nil
// score, never an error that blocks grading.
type Detector struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

func NewDetector() *Detector {
	apiKey := os.Getenv("SAPLING_API_KEY")
	if apiKey == "" {
		log.Println("WARNING: SAPLING_API_KEY not set, AI detection is disabled")
	}

	return &Detector{
		apiKey: apiKey,
		apiURL: saplingEndpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// DetectAIText returns the probability (0..1) that the text is AI-generated,
// or nil when detection is disabled or fails.
func (d *Detector) DetectAIText(ctx context.Context, text string) *float64 {
	if d.apiKey == "" || strings.TrimSpace(text) == "" {
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"key":  d.apiKey,
		"text": text,
	})
	if err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		log.Printf("AI detection request failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("AI detection returned %d", resp.StatusCode)
		return nil
	}

	var parsed struct {
		Score float64 `json:"score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		log.Printf("failed to decode AI detection response: %v", err)
		return nil
	}

	return &parsed.Score
}
