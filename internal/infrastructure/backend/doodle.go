package backend

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/doodlemate-companion/internal/domain"
)

// Doodle is a resolved partner doodle: raw image bytes plus who drew it.
type Doodle struct {
	Image      []byte
	SenderName string
}

// LatestDoodle fetches the single newest doodle record via the get_doodles
// RPC and resolves its image source to raw bytes.
//
// Returns domain.ErrNoDoodle when the query comes back empty, when the newest
// record was sent by the caller (self-doodle exclusion), or when the record
// carries no resolvable image. Only the newest record is ever inspected; an
// older partner doodle behind the caller's own newest one is not surfaced.
func (c *Client) LatestDoodle(ctx context.Context, session domain.SessionRecord) (*Doodle, error) {
	body, err := c.do(ctx, http.MethodPost,
		c.baseURL+"/rest/v1/rpc/get_doodles",
		session.AccessToken,
		map[string]int{"p_limit": 1},
	)
	if err != nil {
		return nil, err
	}

	var records []domain.RemoteDoodle
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode doodle records: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no records: %w", domain.ErrNoDoodle)
	}

	newest := records[0]
	if newest.SenderID == session.UserID {
		return nil, fmt.Errorf("newest doodle is the caller's own: %w", domain.ErrNoDoodle)
	}

	switch src := newest.ImageSource(); src.Kind {
	case domain.ImageSourceInline:
		image, err := decodeInline(src.Content)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, domain.ErrNoDoodle)
		}
		return &Doodle{Image: image, SenderName: newest.SenderName}, nil
	case domain.ImageSourceStorage:
		image, err := c.fetchStorageObject(ctx, src.Path)
		if err != nil {
			return nil, err
		}
		return &Doodle{Image: image, SenderName: newest.SenderName}, nil
	default:
		return nil, fmt.Errorf("record has neither content nor storage path: %w", domain.ErrNoDoodle)
	}
}

// decodeInline strips any data-URL prefix ("data:image/...;base64,") up to
// the first comma and base64-decodes the remainder.
func decodeInline(content string) ([]byte, error) {
	payload := content
	if strings.HasPrefix(content, "data:") {
		if i := strings.Index(content, ","); i >= 0 {
			payload = content[i+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode inline content: %w", err)
	}
	return data, nil
}

// fetchStorageObject downloads a public storage object as raw bytes. The path
// must already be public; no auth header is sent.
func (c *Client) fetchStorageObject(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + "/storage/v1/object/public/storage/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build storage request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("storage fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("storage status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}
	return io.ReadAll(resp.Body)
}
