package apns

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"
)

const (
	SandboxHost    = "https://api.sandbox.push.apple.com"
	ProductionHost = "https://api.push.apple.com"
)

// Notification is one alert pushed to a device. Payload fields are merged
// into the top level of the JSON body alongside the standard aps object.
type Notification struct {
	Title   string
	Body    string
	Payload map[string]interface{}
}

// Client posts notifications to the gateway's per-token endpoint.
type Client struct {
	host     string
	bundleID string
	tokens   *TokenSource
	httpc    *http.Client
}

// NewClient builds a gateway client. An empty host selects the sandbox.
func NewClient(host, bundleID string, tokens *TokenSource) *Client {
	if host == "" {
		host = SandboxHost
	}
	return &Client{host: host, bundleID: bundleID, tokens: tokens, httpc: &http.Client{}}
}

// Push sends one notification to one device token and returns the gateway's
// HTTP status. A transport-level failure returns an error; the caller decides
// how to record it.
func (c *Client) Push(ctx context.Context, deviceToken string, n Notification) (int, error) {
	providerToken, err := c.tokens.Token(time.Now())
	if err != nil {
		return 0, err
	}

	body := map[string]interface{}{
		"aps": map[string]interface{}{
			"alert":             map[string]string{"title": n.Title, "body": n.Body},
			"sound":             "default",
			"content-available": 1,
		},
	}
	for k, v := range n.Payload {
		body[k] = v
	}
	data, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.host+"/3/device/"+deviceToken, bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("authorization", "bearer "+providerToken)
	req.Header.Set("apns-topic", c.bundleID)
	req.Header.Set("apns-id", uuid.Must(uuid.NewV4()).String())
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("push to gateway: %w", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
