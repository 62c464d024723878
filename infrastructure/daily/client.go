// Package daily is the client for the daily.co-compatible video-room API.
// The call coordinator only sees the IRoomProvider contract.
package daily

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Client provisions and deprovisions video rooms over the provider's REST
// API. Both operations are synchronous network calls; the caller decides
// whether a failure is fatal (create) or best-effort (delete).
type Client struct {
	log     *slog.Logger
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(log *slog.Logger, baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		log:     log,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

type roomResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Privacy string `json:"privacy"`
	URL     string `json:"url"`
}

// CreateRoom provisions a new room and returns its access URL.
func (c *Client) CreateRoom(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rooms", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("room API returned %d: %s", resp.StatusCode, body)
	}

	var room roomResponse
	if err = json.NewDecoder(resp.Body).Decode(&room); err != nil {
		return "", err
	}
	if room.URL == "" {
		return "", fmt.Errorf("room API returned no URL")
	}
	return room.URL, nil
}

// DeleteRoom removes the room behind the access URL. The room name is the
// last segment of the URL, matching how the provider addresses rooms.
func (c *Client) DeleteRoom(ctx context.Context, url string) error {
	name := url[strings.LastIndex(url, "/")+1:]
	if name == "" {
		return fmt.Errorf("cannot derive room name from url %q", url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/rooms/"+name, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("room API returned %d on delete", resp.StatusCode)
	}
	return nil
}
