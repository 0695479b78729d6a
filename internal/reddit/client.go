// Package reddit fetches a user's recent submissions and comments through
// Reddit's application-only OAuth API.
package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/suykerbuyk/persona-gen/internal/activity"
	"github.com/suykerbuyk/persona-gen/internal/errs"
	"github.com/suykerbuyk/persona-gen/internal/logging"
)

// MaxListingLimit is the most items Reddit returns for one listing request.
const MaxListingLimit = 100

const service = "reddit"

// Config describes how to reach Reddit.
type Config struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	BaseURL      string // API root, e.g. https://oauth.reddit.com
	TokenURL     string
	SiteURL      string // prefix for comment permalinks
	Timeout      time.Duration
}

// Client implements activity.Fetcher.
type Client struct {
	http    *http.Client
	baseURL string
	siteURL string
	logger  *zap.Logger
}

var _ activity.Fetcher = (*Client)(nil)

// NewClient builds a client that obtains its bearer token with the
// client-credentials grant on first use.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	base := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: &userAgentTransport{agent: cfg.UserAgent, next: http.DefaultTransport},
	}

	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	authed := cc.Client(ctx)
	authed.Timeout = cfg.Timeout

	return &Client{
		http:    authed,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		siteURL: strings.TrimRight(cfg.SiteURL, "/"),
		logger:  logging.OrNop(logger).Named("reddit"),
	}
}

// Fetch returns up to limit newest posts followed by up to limit newest
// comments for username.
func (c *Client) Fetch(ctx context.Context, username string, limit int) (activity.Collection, error) {
	posts, err := c.listing(ctx, username, "submitted", limit)
	if err != nil {
		return nil, fmt.Errorf("fetch submissions for %s: %w", username, err)
	}
	comments, err := c.listing(ctx, username, "comments", limit)
	if err != nil {
		return nil, fmt.Errorf("fetch comments for %s: %w", username, err)
	}

	coll := make(activity.Collection, 0, len(posts)+len(comments))
	for _, t := range posts {
		if t.Data.ID == "" {
			c.logger.Warn("skipping submission without id")
			continue
		}
		coll = append(coll, activity.Record{
			Kind: activity.KindPost,
			Body: t.Data.Title + "\n" + t.Data.SelfText,
			URL:  t.Data.URL,
			ID:   t.Data.ID,
		})
	}
	for _, t := range comments {
		if t.Data.ID == "" {
			c.logger.Warn("skipping comment without id")
			continue
		}
		coll = append(coll, activity.Record{
			Kind: activity.KindComment,
			Body: t.Data.Body,
			URL:  c.siteURL + t.Data.Permalink,
			ID:   t.Data.ID,
		})
	}

	c.logger.Debug("fetched activity",
		zap.String("user", username),
		zap.Int("posts", len(posts)),
		zap.Int("comments", len(comments)))
	return coll, nil
}

func (c *Client) listing(ctx context.Context, username, section string, limit int) ([]thing, error) {
	if limit > MaxListingLimit {
		limit = MaxListingLimit
	}

	q := url.Values{}
	q.Set("sort", "new")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("raw_json", "1")
	endpoint := fmt.Sprintf("%s/user/%s/%s?%s", c.baseURL, url.PathEscape(username), section, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.FromTransport(service, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errs.FromStatus(service, resp.StatusCode, body)
	}

	var l listing
	if err := json.Unmarshal(body, &l); err != nil {
		return nil, fmt.Errorf("unmarshal %s listing: %w", section, err)
	}

	children := l.Data.Children
	if len(children) > limit {
		children = children[:limit]
	}
	return children, nil
}

// classifyTransport separates a rejected token request from a network
// failure; both surface from http.Client.Do.
func classifyTransport(err error) error {
	var rErr *oauth2.RetrieveError
	if errors.As(err, &rErr) && rErr.Response != nil {
		return fmt.Errorf("obtain token: %w", errs.FromStatus(service, rErr.Response.StatusCode, rErr.Body))
	}
	return errs.FromTransport(service, err)
}

type userAgentTransport struct {
	agent string
	next  http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.agent == "" {
		return t.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.agent)
	return t.next.RoundTrip(r)
}
