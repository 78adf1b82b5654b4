package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/doodlemate-companion/internal/domain"
)

// UserFromToken resolves the identity behind a caller-supplied bearer token.
// Any failure to resolve maps to domain.ErrUnauthorized.
func (c *Client) UserFromToken(ctx context.Context, bearer string) (string, error) {
	body, err := c.do(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", bearer, nil)
	if err != nil {
		return "", fmt.Errorf("resolve user: %w", errUnauthorized(err))
	}
	var user struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &user); err != nil || user.ID == "" {
		return "", fmt.Errorf("resolve user: %w", errUnauthorized(err))
	}
	return user.ID, nil
}

// DeviceTokens returns the target user's registered device tokens, duplicates
// preserved; deduplication is the dispatcher's job.
func (c *Client) DeviceTokens(ctx context.Context, userID string) ([]string, error) {
	u := c.baseURL + "/rest/v1/users?select=apns_token&apns_token=not.is.null&id=eq." +
		url.QueryEscape(userID)
	body, err := c.do(ctx, http.MethodGet, u, c.apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("list device tokens: %w", err)
	}
	var rows []struct {
		Token string `json:"apns_token"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode device tokens: %w", err)
	}
	tokens := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Token != "" {
			tokens = append(tokens, row.Token)
		}
	}
	return tokens, nil
}

// DeleteUser removes the account through the backend's admin endpoint,
// authenticated with the service key.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	u := c.baseURL + "/auth/v1/admin/users/" + url.PathEscape(userID)
	if _, err := c.do(ctx, http.MethodDelete, u, c.apiKey, nil); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func errUnauthorized(cause error) error {
	if cause == nil {
		cause = errors.New("empty user id")
	}
	return fmt.Errorf("%v: %w", cause, domain.ErrUnauthorized)
}
