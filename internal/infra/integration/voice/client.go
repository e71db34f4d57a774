package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Client fala com o provedor de chamadas de voz (API REST genérica /calls).
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) PlaceCall(ctx context.Context, phone, name string, step int) (string, error) {
	if c.apiKey == "" || c.baseURL == "" {
		return "", fmt.Errorf("voice provider não configurado")
	}

	input := PlaceCallInput{
		To:     phone,
		Script: callScript(name, step),
		Metadata: map[string]string{
			"step": strconv.Itoa(step),
		},
	}

	body, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar chamada: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/calls", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro ao chamar voice provider: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var result PlaceCallResponse
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &result); err != nil && resp.StatusCode < 300 {
			return "", fmt.Errorf("resposta inválida do voice provider: %w", err)
		}
	}

	if resp.StatusCode >= 300 {
		msg := string(respBody)
		if result.Error != nil {
			msg = result.Error.Message
		}
		return "", fmt.Errorf("voice provider retornou %d: %s", resp.StatusCode, msg)
	}

	log.Debug().Str("call_id", result.CallID).Int("step", step).Msg("call placed")
	return result.CallID, nil
}

func callScript(name string, step int) string {
	firstName, _, _ := strings.Cut(strings.TrimSpace(name), " ")
	if firstName == "" {
		firstName = "there"
	}
	if step <= 1 {
		return fmt.Sprintf("Hi %s, this is Ligue following up on the email we sent. Do you have a minute?", firstName)
	}
	return fmt.Sprintf("Hi %s, Ligue again. We'd love to find a time to show you how we can help.", firstName)
}
