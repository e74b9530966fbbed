package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrGraderNotConfigured is returned when the Gemini API key is missing.
// Callers surface this as service-unavailable, not as a bad request.
var ErrGraderNotConfigured = errors.New("AI grader is not configured (missing API key)")

const (
	geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"
	defaultModel   = "gemini-2.5-flash"
	maxAttempts    = 5
)

// Grader talks to the hosted generative-AI service that grades submissions
// and generates exercises. Transient 5xx failures are retried with
// exponential backoff before giving up.
type Grader struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewGrader() *Grader {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Println("WARNING: GEMINI_API_KEY not set, grading is disabled")
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultModel
	}

	return &Grader{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GenerateContent sends one prompt to the model and returns its text reply.
func (g *Grader) GenerateContent(ctx context.Context, prompt, systemInstruction string) (string, error) {
	if g.apiKey == "" {
		return "", ErrGraderNotConfigured
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	if systemInstruction != "" {
		reqBody.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: systemInstruction}}}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode AI request: %w", err)
	}

	url := fmt.Sprintf(geminiEndpoint, g.model, g.apiKey)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		text, retryable, err := g.sendRequest(ctx, url, payload)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}

		backoff := time.Duration(1<<(attempt-1)) * time.Second
		if backoff > 10*time.Second {
			backoff = 10 * time.Second
		}
		log.Printf("AI request failed (attempt %d/%d), retrying in %s: %v", attempt, maxAttempts, backoff, err)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
	}

	return "", fmt.Errorf("AI provider unavailable after %d attempts: %w", maxAttempts, lastErr)
}

func (g *Grader) sendRequest(ctx context.Context, url string, payload []byte) (text string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", true, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, err
	}

	if resp.StatusCode >= 500 {
		return "", true, fmt.Errorf("AI provider returned %d", resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return "", false, fmt.Errorf("invalid AI request (%d): %s", resp.StatusCode, body)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", false, fmt.Errorf("failed to decode AI response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", false, errors.New("model returned empty response (possibly safety filter)")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, false, nil
}

// GradeResult is the parsed verdict of the grading model.
type GradeResult struct {
	Grade    float64 `json:"grade"`
	Feedback string  `json:"feedback"`
}

const gradingInstruction = `You are a strict but fair Polish literature teacher.
Grade the student's answer on a 0-6 scale. Reply with JSON only:
{"grade": <number>, "feedback": "<short feedback in Polish>"}`

// GradeSubmission asks the model to grade a student's answer to a task,
// optionally against a model answer key.
func (g *Grader) GradeSubmission(ctx context.Context, task, answerKey, userAnswer string) (*GradeResult, error) {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Task:\n%s\n\n", task)
	if answerKey != "" {
		fmt.Fprintf(&prompt, "Model answer key:\n%s\n\n", answerKey)
	}
	fmt.Fprintf(&prompt, "Student answer:\n%s\n", userAnswer)

	text, err := g.GenerateContent(ctx, prompt.String(), gradingInstruction)
	if err != nil {
		return nil, err
	}

	return parseGradeResponse(text)
}

// parseGradeResponse extracts the JSON verdict from the model's reply, which
// may be wrapped in markdown fences or surrounding prose.
func parseGradeResponse(text string) (*GradeResult, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("model reply carries no JSON verdict: %q", text)
	}

	var result GradeResult
	if err := json.Unmarshal([]byte(text[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("failed to parse grade verdict: %w", err)
	}

	return &result, nil
}
