package beyond

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	apperrors "github.com/louisbranch/sheetwright/internal/platform/errors"
	"github.com/louisbranch/sheetwright/internal/systems/dnd5e"
)

// DefaultBaseURL is the character service endpoint.
const DefaultBaseURL = "https://character-service.dndbeyond.com/character/v5/character"

// maxPayloadBytes bounds a single character payload read.
const maxPayloadBytes = 4 << 20

// Cache stores raw fetched payloads keyed by character ID.
type Cache interface {
	Get(ctx context.Context, characterID string) (payload []byte, fetchedAt time.Time, err error)
	Put(ctx context.Context, characterID string, payload []byte, fetchedAt time.Time) error
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Session Session
	// Cache is optional; when set, fetches read through it.
	Cache Cache
	// CacheTTL bounds how old a cached payload may be before refetching.
	// Zero means cached payloads never expire.
	CacheTTL   time.Duration
	HTTPClient *http.Client
	Clock      func() time.Time
}

// Client fetches raw character payloads.
type Client struct {
	baseURL    string
	session    Session
	cache      Cache
	cacheTTL   time.Duration
	httpClient *http.Client
	clock      func() time.Time
}

// New creates a character-service client.
func New(opts Options) *Client {
	client := &Client{
		baseURL:    opts.BaseURL,
		session:    opts.Session,
		cache:      opts.Cache,
		cacheTTL:   opts.CacheTTL,
		httpClient: opts.HTTPClient,
		clock:      opts.Clock,
	}
	if client.baseURL == "" {
		client.baseURL = DefaultBaseURL
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
			Timeout: 30 * time.Second,
		}
	}
	if client.clock == nil {
		client.clock = time.Now
	}
	return client
}

// FetchRaw returns the raw character payload, reading through the cache when
// one is configured.
func (c *Client) FetchRaw(ctx context.Context, characterID string) ([]byte, error) {
	if characterID == "" {
		return nil, fmt.Errorf("character id is required")
	}

	now := c.clock()
	if c.cache != nil {
		payload, fetchedAt, err := c.cache.Get(ctx, characterID)
		if err == nil && payload != nil {
			if c.cacheTTL == 0 || now.Sub(fetchedAt) <= c.cacheTTL {
				return payload, nil
			}
		}
	}

	payload, err := c.fetch(ctx, characterID)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, characterID, payload, now); err != nil {
			// A cache write failure must not fail the fetch.
			return payload, nil
		}
	}
	return payload, nil
}

// FetchSnapshot fetches and normalizes a character into a snapshot.
func (c *Client) FetchSnapshot(ctx context.Context, characterID string) (dnd5e.CharacterSnapshot, error) {
	payload, err := c.FetchRaw(ctx, characterID)
	if err != nil {
		return dnd5e.CharacterSnapshot{}, err
	}
	snap, err := DecodeSnapshot(payload)
	if err != nil {
		return dnd5e.CharacterSnapshot{}, apperrors.Wrap(apperrors.CodeFetchDecodeFailed,
			fmt.Sprintf("decode character %s", characterID), err)
	}
	return snap, nil
}

func (c *Client) fetch(ctx context.Context, characterID string) ([]byte, error) {
	if c.session.Token != "" && !c.session.Valid(c.clock()) {
		return nil, apperrors.New(apperrors.CodeFetchSessionExpired, "session token is expired")
	}

	endpoint := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(characterID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch character %s: %w", characterID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, apperrors.WithMetadata(apperrors.CodeFetchCharacterNotFound,
			fmt.Sprintf("character %s not found", characterID),
			map[string]string{"CharacterID": characterID})
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, apperrors.New(apperrors.CodeFetchUnauthorized,
			fmt.Sprintf("character %s requires authorization", characterID))
	default:
		return nil, fmt.Errorf("fetch character %s: unexpected status %d", characterID, resp.StatusCode)
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("read character %s payload: %w", characterID, err)
	}
	return payload, nil
}
