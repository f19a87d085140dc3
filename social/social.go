// Package social posts announcements to a social platform with a
// twitter-style HTTP API (bearer token, JSON body with a "text" field).
package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/wansing/gazette/core"
)

type Client struct {
	endpoint string
	token    string
	client   *http.Client
}

var _ core.SocialPoster = (*Client)(nil)

func NewClient(config core.SocialConfig) *Client {
	return &Client{
		endpoint: config.Endpoint,
		token:    config.Token,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) Post(ctx context.Context, text string) error {

	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("social api: %s", resp.Status)
	}
	return nil
}
