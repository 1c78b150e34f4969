// Package voicecall drives the external voice-call workflow: submit a call
// about a listing, then poll the call id until it ends or the bounded wait
// runs out.
package voicecall

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	terminalStatus      = "ended"
	defaultPollInterval = 3 * time.Second
	defaultMaxWait      = 5 * time.Minute
)

var validStatuses = map[string]bool{
	"scheduled":   true,
	"queued":      true,
	"ringing":     true,
	"in-progress": true,
	"forwarding":  true,
	"ended":       true,
}

type Client struct {
	baseURL       string
	apiKey        string
	assistantID   string
	phoneNumberID string
	pollInterval  time.Duration
	maxWait       time.Duration
	httpClient    *http.Client
	logger        *logrus.Logger
}

func NewClient(baseURL, apiKey, assistantID, phoneNumberID string, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:       baseURL,
		apiKey:        apiKey,
		assistantID:   assistantID,
		phoneNumberID: phoneNumberID,
		pollInterval:  defaultPollInterval,
		maxWait:       defaultMaxWait,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// PlaceCall submits a call about a listing and waits (bounded) for it to end.
// A wait that times out returns a still-in-progress result, not an error.
func (c *Client) PlaceCall(ctx context.Context, listingName, listingAddress string, questions []string) (*CallResult, error) {
	joined := make([]string, 0, len(questions))
	for _, q := range questions {
		q = strings.TrimSpace(q)
		if q != "" {
			joined = append(joined, "- "+q)
		}
	}

	req := CreateCallRequest{
		AssistantID:   c.assistantID,
		PhoneNumberID: c.phoneNumberID,
		AssistantOverrides: AssistantOverrides{
			VariableValues: map[string]string{
				"listing_name":     listingName,
				"listing_address":  listingAddress,
				"joined_questions": strings.Join(joined, "\n"),
			},
		},
	}

	created, err := c.createCall(ctx, req)
	if err != nil {
		return nil, err
	}
	if created.ID == "" {
		return nil, fmt.Errorf("no call id returned")
	}

	c.logger.WithFields(logrus.Fields{
		"call_id": created.ID,
		"listing": listingName,
	}).Info("Voice call placed")

	return c.WaitForCall(ctx, created.ID)
}

// WaitForCall polls the call until it ends or the bounded wait expires.
func (c *Client) WaitForCall(ctx context.Context, callID string) (*CallResult, error) {
	deadline := time.Now().Add(c.maxWait)
	lastStatus := ""

	for {
		call, err := c.GetCall(ctx, callID)
		if err != nil {
			return nil, err
		}

		status := strings.ToLower(call.Status)
		if !validStatuses[status] {
			c.logger.WithFields(logrus.Fields{
				"call_id": callID,
				"status":  status,
			}).Warn("Unexpected call status")
			return &CallResult{CallID: callID, Status: status, InProgress: true}, nil
		}

		if status != lastStatus {
			c.logger.WithFields(logrus.Fields{
				"call_id": callID,
				"status":  status,
			}).Debug("Call status changed")
			lastStatus = status
		}

		if status == terminalStatus {
			result := &CallResult{CallID: callID, Status: status}
			if call.Analysis != nil {
				result.Summary = call.Analysis.Summary
			}
			if call.Artifact != nil {
				result.Transcript = call.Artifact.Transcript
			}
			return result, nil
		}

		if time.Now().After(deadline) {
			return &CallResult{CallID: callID, Status: status, InProgress: true}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

// GetCall fetches the current state of one call.
func (c *Client) GetCall(ctx context.Context, callID string) (*Call, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/call/%s", c.baseURL, callID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET /call/%s failed with status %d: %s", callID, resp.StatusCode, string(body))
	}

	var call Call
	if err := json.Unmarshal(body, &call); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &call, nil
}

func (c *Client) createCall(ctx context.Context, payload CreateCallRequest) (*Call, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/call", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("POST /call failed with status %d: %s", resp.StatusCode, string(body))
	}

	var call Call
	if err := json.Unmarshal(body, &call); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &call, nil
}
