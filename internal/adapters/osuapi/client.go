// Package osuapi reads multiplayer room data from the osu! v2 API,
// optionally through a URL-prefix proxy that strips CORS restrictions.
package osuapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kotrik/roomwatch/internal/domain"
	"github.com/kotrik/roomwatch/internal/ports"
)

const maxResponseBytes = 4 << 20

type Config struct {
	BaseURL     string
	ProxyPrefix string
	Token       string
	HTTPClient  *http.Client
	Logger      *zap.Logger
}

// Client fetches room and score payloads with the configured bearer token.
// Identical URLs never have two requests in flight at once, and successful
// room responses are cached per URL for the client's lifetime. Score lists
// are live-updating and are re-fetched on every call.
type Client struct {
	httpClient *http.Client
	baseURL    string
	proxy      string
	token      string
	log        *zap.Logger

	group singleflight.Group

	mu        sync.RWMutex
	roomCache map[string][]byte
}

var _ ports.RoomSource = (*Client)(nil)

func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		proxy:      cfg.ProxyPrefix,
		token:      cfg.Token,
		log:        log,
		roomCache:  map[string][]byte{},
	}
}

func (c *Client) Room(ctx context.Context, roomID int64) (domain.Room, error) {
	url := c.endpoint(fmt.Sprintf("/rooms/%d", roomID))

	body, err := c.get(ctx, url, true)
	if err != nil {
		return domain.Room{}, err
	}

	var payload roomPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.Room{}, fmt.Errorf("decode room payload: %w", err)
	}

	return payload.toDomain(), nil
}

func (c *Client) PlaylistScores(ctx context.Context, roomID, playlistID int64) ([]domain.ScoreEntry, error) {
	url := c.endpoint(fmt.Sprintf("/rooms/%d/playlist/%d/scores", roomID, playlistID))

	body, err := c.get(ctx, url, false)
	if err != nil {
		return nil, err
	}

	var payload scoresPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode scores payload: %w", err)
	}

	return payload.toDomain()
}

func (c *Client) endpoint(path string) string {
	return c.proxy + c.baseURL + path
}

func (c *Client) get(ctx context.Context, url string, cacheable bool) ([]byte, error) {
	if cacheable {
		c.mu.RLock()
		cached, ok := c.roomCache[url]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}
	}

	result, err, _ := c.group.Do(url, func() (any, error) {
		body, err := c.fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		if cacheable {
			c.mu.Lock()
			c.roomCache[url] = body
			c.mu.Unlock()
		}
		return body, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+c.token)
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", "roomwatch")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("api response",
		zap.String("url", url),
		zap.Int("status", response.StatusCode),
		zap.Int("bytes", len(body)))

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("status %d: %s", response.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}
