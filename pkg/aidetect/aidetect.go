package aidetect

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// blockedPhrases are rejected before any detection request goes out.
var blockedPhrases = []string{
	"as an ai",
	"i do not possess",
	"language model",
}

// ContainsBlockedPhrase reports whether the text contains one of the known
// AI tell-tale phrases. Matching is case-insensitive.
func ContainsBlockedPhrase(text string) bool {
	lowered := strings.ToLower(text)
	for _, phrase := range blockedPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

// Client calls the external AI-text-detection service.
type Client struct {
	Endpoint   string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		Endpoint:   endpoint,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Detect asks the external service whether the text looks AI-generated.
// Any failure (transport, status, decode) is treated as "not AI-generated":
// the check must never block a user because the detector is down.
func (c *Client) Detect(ctx context.Context, text string) bool {
	if c == nil || c.Endpoint == "" {
		return false
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logrus.WithError(err).Warn("AI detection request failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithField("status", resp.StatusCode).Warn("AI detection returned non-OK status")
		return false
	}

	var result struct {
		AI bool `json:"ai"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logrus.WithError(err).Warn("Failed to decode AI detection response")
		return false
	}

	return result.AI
}
