// Package spoonacular is a client for the Spoonacular recipe API. Calls are
// rate limited, guarded by a circuit breaker and optionally cached.
package spoonacular

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	suggestionCount = 20
	// fetchTimeout bounds a shared upstream call, rate limiter wait included.
	fetchTimeout = 15 * time.Second
)

var ErrUnavailable = errors.New("recipe api unavailable")

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("recipe api returned %d: %s", e.Code, e.Body)
}

type SuggestedRecipe struct {
	ID                    int    `json:"id"`
	Title                 string `json:"title"`
	Image                 string `json:"image"`
	ImageType             string `json:"imageType"`
	UsedIngredientCount   int    `json:"usedIngredientCount"`
	MissedIngredientCount int    `json:"missedIngredientCount"`
	Likes                 int    `json:"likes"`
}

type Options struct {
	BaseURL    string
	APIKey     string
	RPS        float64
	CacheTTL   time.Duration
	Cache      Cache
	HTTPClient *http.Client
}

type Client struct {
	baseURL  string
	apiKey   string
	http     *http.Client
	limiter  *rate.Limiter
	cb       *gobreaker.CircuitBreaker
	cache    Cache
	cacheTTL time.Duration
	sf       singleflight.Group
}

func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	limit := rate.Inf
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}

	st := gobreaker.Settings{
		Name:        "spoonacular",
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
		// Client errors say nothing about the API's health.
		IsSuccessful: func(err error) bool {
			var se *StatusError
			if errors.As(err, &se) {
				return se.Code < http.StatusInternalServerError
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}

	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		apiKey:   opts.APIKey,
		http:     httpClient,
		limiter:  rate.NewLimiter(limit, 1),
		cb:       gobreaker.NewCircuitBreaker(st),
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
	}
}

// FindByIngredients asks for recipes using the given, already normalized,
// ingredients.
func (c *Client) FindByIngredients(ctx context.Context, ingredients []string) ([]SuggestedRecipe, error) {
	q := url.Values{}
	q.Set("ingredients", strings.Join(ingredients, ","))
	q.Set("number", strconv.Itoa(suggestionCount))

	body, err := c.get(ctx, "/recipes/findByIngredients", q)
	if err != nil {
		return nil, err
	}

	var recipes []SuggestedRecipe
	if err := json.Unmarshal(body, &recipes); err != nil {
		return nil, fmt.Errorf("failed to decode suggestions: %w", err)
	}
	return recipes, nil
}

// RecipeInformation returns the API's recipe document untouched.
func (c *Client) RecipeInformation(ctx context.Context, id int) (json.RawMessage, error) {
	body, err := c.get(ctx, "/recipes/"+strconv.Itoa(id)+"/information", url.Values{})
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("recipe api returned invalid json")
	}
	return json.RawMessage(body), nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	key := path + "?" + q.Encode()

	if c.cache != nil {
		if cached, ok, err := c.cache.Get(ctx, key); err != nil {
			slog.Warn("suggestion cache read failed", "key", key, "error", err)
		} else if ok {
			return cached, nil
		}
	}

	// The fetch is shared by every concurrent caller for the key, so it must
	// not die with whichever caller happened to start it.
	ch := c.sf.DoChan(key, func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		return c.fetch(fctx, path, q)
	})
	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		return nil, res.Err
	}
	body := res.Val.([]byte)

	if c.cache != nil && c.cacheTTL > 0 {
		if err := c.cache.Set(ctx, key, body, c.cacheTTL); err != nil {
			slog.Warn("suggestion cache write failed", "key", key, "error", err)
		}
	}
	return body, nil
}

func (c *Client) fetch(ctx context.Context, path string, q url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	withKey := url.Values{}
	for k, v := range q {
		withKey[k] = v
	}
	withKey.Set("apiKey", c.apiKey)
	endpoint := c.baseURL + path + "?" + withKey.Encode()

	v, err := c.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &StatusError{Code: resp.StatusCode, Body: truncate(string(body), 200)}
		}
		return body, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
