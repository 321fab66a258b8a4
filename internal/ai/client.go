// Package ai talks to the chat-completions backend that turns free-text
// messages into structured task fields.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"backoffice/internal/common/config"
	"backoffice/internal/common/errors"
	"backoffice/internal/common/logger"
)

// systemPrompt instructs the model to emit a strict four-key JSON object.
// The worked examples pin down the expected shapes; the prompt asks for at
// most one of deadlineString/weeknummer.
const systemPrompt = `Je bent een assistent die taakinformatie uit gebruikersberichten haalt om een takenlijstitem aan te maken voor een Nederlands bedrijf.
Analyseer het verzoek van de gebruiker en identificeer:
1. De kerntaakomschrijving.
2. De naam van het bedrijf dat genoemd wordt (indien aanwezig).
3. Een specifieke deadline OF een weeknummer (indien aanwezig). Geef slechts een van beide terug.

Formatteer de uitvoer STRIKT als een JSON-object met de volgende vier sleutels:
- "taakOmschrijving" (string): De beschrijving van de taak.
- "bedrijfsnaam" (string | null): De naam van het bedrijf, of null indien niet genoemd.
- "deadlineString" (string | null): De deadline als tekst (bv. "morgenmiddag", "eind van de week", "volgende week dinsdag"), of null indien niet genoemd of als weeknummer is gegeven.
- "weeknummer" (integer | null): Het weeknummer als getal (bv. 42), of null indien niet genoemd of als deadlineString is gegeven.

Voorbeeld gebruikersbericht: "Herinner me eraan om Jansen BV te bellen over de offerte volgende week woensdag"
Voorbeeld JSON-uitvoer: {"taakOmschrijving": "Jansen BV bellen over de offerte", "bedrijfsnaam": "Jansen BV", "deadlineString": "volgende week woensdag", "weeknummer": null}

Voorbeeld gebruikersbericht: "planning maken voor Reints week 45"
Voorbeeld JSON-uitvoer: {"taakOmschrijving": "planning maken voor Reints", "bedrijfsnaam": "Reints", "deadlineString": null, "weeknummer": 45}

Voorbeeld gebruikersbericht: "nieuwe blogpost schrijven"
Voorbeeld JSON-uitvoer: {"taakOmschrijving": "nieuwe blogpost schrijven", "bedrijfsnaam": null, "deadlineString": null, "weeknummer": null}`

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	config config.OpenAIConfig
	client *http.Client
	logger logger.Logger
}

func NewClient(cfg config.OpenAIConfig, log logger.Logger) *Client {
	return &Client{
		config: cfg,
		// Rely on per-request contexts, not a client-wide timeout
		client: &http.Client{},
		logger: log.WithFields(map[string]interface{}{
			"component": "ai-extractor",
		}),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	Temperature    float64        `json:"temperature"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Extract sends the fixed system instruction plus the user message and
// returns the raw completion text. The message must be non-empty; callers
// validate that before reaching here.
func (c *Client) Extract(ctx context.Context, message string) (string, error) {
	timeout := config.GetDuration(c.config.Timeout)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, _ := json.Marshal(chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: message},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
		Temperature:    c.config.Temperature,
	})

	var resp *http.Response
	var lastErr error
	lastStatus := 0

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", errors.NewUpstreamUnavailableError(lastStatus, ctx.Err())
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.config.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
		if err != nil {
			return "", errors.NewUpstreamUnavailableError(0, err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

		resp, lastErr = c.client.Do(req)

		if ctx.Err() != nil {
			return "", errors.NewUpstreamUnavailableError(lastStatus, ctx.Err())
		}

		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			lastStatus = resp.StatusCode
			detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			resp.Body.Close()
			lastErr = fmt.Errorf("completion backend returned %d: %s", resp.StatusCode, detail)
			resp = nil

			// Client errors other than rate limiting will not heal on retry
			if lastStatus >= 400 && lastStatus < 500 && lastStatus != http.StatusTooManyRequests {
				break
			}
		}
	}

	if lastErr != nil {
		return "", errors.NewUpstreamUnavailableError(lastStatus, lastErr)
	}
	if resp == nil {
		return "", errors.NewUpstreamUnavailableError(lastStatus, fmt.Errorf("no successful response after retries"))
	}
	defer resp.Body.Close()

	var apiResponse chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", errors.NewUpstreamUnavailableError(resp.StatusCode, fmt.Errorf("decode error: %v", err))
	}
	if len(apiResponse.Choices) == 0 {
		return "", errors.NewUpstreamUnavailableError(resp.StatusCode, fmt.Errorf("completion response had no choices"))
	}

	content := apiResponse.Choices[0].Message.Content
	c.logger.Debug("completion received", map[string]interface{}{
		"bytes": len(content),
	})

	return content, nil
}
