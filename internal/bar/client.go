// Package bar provides a client for the BAR replay/battle API with a
// two-tier cached fetch path: roster and match detail go through the
// durable cache, match lists and live lobbies through the volatile one.
package bar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/furyhawk/barstats/internal/cache"
	"github.com/furyhawk/barstats/internal/model"
)

// DefaultBaseURL is the public BAR replay archive API.
const DefaultBaseURL = "https://api.bar-rts.com"

// Season0Start is the fixed cutoff used by the season filter to exclude
// pre-reset matches.
const Season0Start = "2023-06-01"

// ErrStatus marks a non-200 response from the replay service. Callers test
// for it with errors.Is to tell a service-side failure from a local one.
var ErrStatus = errors.New("unexpected status")

// Client fetches JSON from the replay API, answering from the cache when a
// live entry exists for the exact URL.
type Client struct {
	baseURL string
	http    *http.Client
	store   *cache.Store
	limiter *rate.Limiter
	now     func() time.Time
}

// NewClient returns a client backed by the given cache store.
// A zero timeout defaults to 15 seconds.
func NewClient(baseURL string, store *cache.Store, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		store:   store,
		// One request per 200ms is plenty for a batch pipeline and easy
		// on a community-run API.
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
		now:     time.Now,
	}
}

// get fetches url through the cache tier and JSON-decodes the body into out.
func (c *Client) get(ctx context.Context, u string, tier cache.Tier, out any) error {
	if c.store != nil {
		body, ok, err := c.store.Get(u)
		if err != nil {
			return fmt.Errorf("cache get: %w", err)
		}
		if ok {
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("decode cached %s: %w", u, err)
			}
			return nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: HTTP %d: %w", u, resp.StatusCode, ErrStatus)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("GET %s: read body: %w", u, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", u, err)
	}
	if c.store != nil {
		if err := c.store.Put(u, tier, body); err != nil {
			return err
		}
	}
	return nil
}

// CachedUsers returns the full player roster (durable fetch).
func (c *Client) CachedUsers(ctx context.Context) ([]CachedUser, error) {
	var users []CachedUser
	if err := c.get(ctx, c.baseURL+"/cached-users", cache.TierDurable, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ReplayQuery parameterizes the match listing.
type ReplayQuery struct {
	Page    int
	Limit   int
	Preset  model.Preset
	Season0 bool
	Players string
}

// encode builds the query string. url.Values sorts keys, so identical
// queries always produce identical URLs (and identical cache keys).
func (q ReplayQuery) encode(today string) string {
	page, limit := q.Page, q.Limit
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = 9999
	}
	v := url.Values{}
	v.Set("page", fmt.Sprint(page))
	v.Set("limit", fmt.Sprint(limit))
	for _, p := range q.Preset.Values() {
		v.Add("preset", p)
	}
	if q.Season0 {
		v.Add("date", Season0Start)
		v.Add("date", today)
	}
	v.Set("hasBots", "false")
	v.Set("endedNormally", "true")
	v.Set("players", q.Players)
	return v.Encode()
}

// Replays returns a page of a user's match listing (volatile fetch).
func (c *Client) Replays(ctx context.Context, q ReplayQuery) (*ReplayPage, error) {
	u := c.baseURL + "/replays?" + q.encode(c.now().UTC().Format("2006-01-02"))
	var page ReplayPage
	if err := c.get(ctx, u, cache.TierVolatile, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Replay returns the full detail of one match (durable fetch; a finished
// match never changes).
func (c *Client) Replay(ctx context.Context, id string) (*ReplayDetail, error) {
	var detail ReplayDetail
	if err := c.get(ctx, c.baseURL+"/replays/"+url.PathEscape(id), cache.TierDurable, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Battles returns the currently open lobbies, most popular first
// (volatile fetch).
func (c *Client) Battles(ctx context.Context) ([]Battle, error) {
	var battles []Battle
	if err := c.get(ctx, c.baseURL+"/battles", cache.TierVolatile, &battles); err != nil {
		return nil, err
	}
	return battles, nil
}
