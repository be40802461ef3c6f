// Package ideas asks Gemini to invent a pizza name and description
// from a list of ingredients.
package ideas

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const generateURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent"

var (
	ErrNotConfigured       = errors.New("idea service not configured")
	ErrUpstreamUnavailable = errors.New("idea service unavailable")
	// ErrBadResponse: the model answered but not with usable JSON.
	ErrBadResponse = errors.New("idea service returned an unusable response")
)

type Idea struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Client struct {
	apiKey string
	httpc  *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		httpc:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

func (c *Client) GeneratePizzaIdea(ctx context.Context, ingredients []string) (*Idea, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	prompt := fmt.Sprintf(
		"Eres un chef de pizzas experto y creativo. "+
			"Tu tarea es inventar un nombre y una descripción para una nueva pizza basada en una lista de ingredientes. "+
			"Ingredientes: %s. "+
			"Por favor, responde únicamente con un objeto JSON válido que contenga dos claves: "+
			"'name' (el nombre de la pizza) y 'description' (una descripción corta y apetitosa). "+
			"No incluyas ninguna otra palabra, explicación o formato markdown como ```json.",
		strings.Join(ingredients, ", "),
	)

	reqBody, err := json.Marshal(map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, generateURL+"?key="+c.apiKey, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var body struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if len(body.Candidates) == 0 || len(body.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty candidates", ErrBadResponse)
	}

	idea, err := parseIdea(body.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return nil, err
	}
	return idea, nil
}

// parseIdea tolerates the model wrapping its answer in markdown fences
// despite being told not to.
func parseIdea(text string) (*Idea, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var idea Idea
	if err := json.Unmarshal([]byte(cleaned), &idea); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if idea.Name == "" || idea.Description == "" {
		return nil, fmt.Errorf("%w: missing name or description", ErrBadResponse)
	}
	return &idea, nil
}
