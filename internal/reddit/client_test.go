package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suykerbuyk/persona-gen/internal/activity"
	"github.com/suykerbuyk/persona-gen/internal/errs"
)

const testAgent = "persona_generator/test by alice"

type fakeReddit struct {
	t           *testing.T
	submissions []thingData
	comments    []thingData
	status      map[string]int // path -> forced status
	tokenStatus int
	tokenHits   atomic.Int32
	apiHits     atomic.Int32
	limits      []string
}

func (f *fakeReddit) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenHits.Add(1)
		id, secret, ok := r.BasicAuth()
		assert.True(f.t, ok, "token request should use basic auth")
		assert.Equal(f.t, "cid", id)
		assert.Equal(f.t, "csecret", secret)
		assert.Equal(f.t, testAgent, r.Header.Get("User-Agent"))
		assert.NoError(f.t, r.ParseForm())
		assert.Equal(f.t, "client_credentials", r.PostForm.Get("grant_type"))

		if f.tokenStatus != 0 {
			w.WriteHeader(f.tokenStatus)
			w.Write([]byte(`{"message": "Unauthorized", "error": 401}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-123","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/user/", func(w http.ResponseWriter, r *http.Request) {
		f.apiHits.Add(1)
		assert.Equal(f.t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(f.t, testAgent, r.Header.Get("User-Agent"))
		assert.Equal(f.t, "new", r.URL.Query().Get("sort"))
		assert.Equal(f.t, "1", r.URL.Query().Get("raw_json"))
		f.limits = append(f.limits, r.URL.Query().Get("limit"))

		if code, ok := f.status[r.URL.Path]; ok {
			w.WriteHeader(code)
			w.Write([]byte(`{"message": "nope"}`))
			return
		}

		var kind string
		var items []thingData
		switch r.URL.Path {
		case "/user/alice/submitted":
			kind, items = "t3", f.submissions
		case "/user/alice/comments":
			kind, items = "t1", f.comments
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "Not Found", "error": 404}`))
			return
		}

		var l listing
		l.Kind = "Listing"
		for _, d := range items {
			l.Data.Children = append(l.Data.Children, thing{Kind: kind, Data: d})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(l)
	})
	return mux
}

func newTestClient(t *testing.T, f *fakeReddit) *Client {
	t.Helper()
	f.t = t
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	return NewClient(Config{
		ClientID:     "cid",
		ClientSecret: "csecret",
		UserAgent:    testAgent,
		BaseURL:      srv.URL,
		TokenURL:     srv.URL + "/api/v1/access_token",
		SiteURL:      "https://reddit.com",
	}, nil)
}

func TestFetch_PostsThenComments(t *testing.T) {
	f := &fakeReddit{
		submissions: []thingData{
			{ID: "p2", Title: "Newest", SelfText: "body two", URL: "https://example.com/two"},
			{ID: "p1", Title: "Older & wiser", SelfText: "", URL: "https://www.youtube.com/watch?v=abc&t=10"},
		},
		comments: []thingData{
			{ID: "c1", Body: "I <3 Go, &amp; is an entity", Permalink: "/r/golang/comments/abc/title/c1/"},
		},
	}
	c := newTestClient(t, f)

	got, err := c.Fetch(context.Background(), "alice", 2)
	require.NoError(t, err)

	want := activity.Collection{
		{Kind: activity.KindPost, Body: "Newest\nbody two", URL: "https://example.com/two", ID: "p2"},
		{Kind: activity.KindPost, Body: "Older & wiser\n", URL: "https://www.youtube.com/watch?v=abc&t=10", ID: "p1"},
		{Kind: activity.KindComment, Body: "I <3 Go, &amp; is an entity", URL: "https://reddit.com/r/golang/comments/abc/title/c1/", ID: "c1"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Fetch mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, activity.Counts{Posts: 2, Comments: 1}, got.Counts())
	assert.Equal(t, int32(1), f.tokenHits.Load(), "token should be reused across requests")
	assert.Equal(t, []string{"2", "2"}, f.limits)
}

func TestFetch_ClampsLimit(t *testing.T) {
	f := &fakeReddit{}
	c := newTestClient(t, f)

	got, err := c.Fetch(context.Background(), "alice", 500)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, []string{fmt.Sprint(MaxListingLimit), fmt.Sprint(MaxListingLimit)}, f.limits)
}

func TestFetch_TruncatesOversizedListing(t *testing.T) {
	f := &fakeReddit{
		comments: []thingData{
			{ID: "c3", Body: "three", Permalink: "/c3"},
			{ID: "c2", Body: "two", Permalink: "/c2"},
			{ID: "c1", Body: "one", Permalink: "/c1"},
		},
	}
	c := newTestClient(t, f)

	got, err := c.Fetch(context.Background(), "alice", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c3", got[0].ID)
	assert.Equal(t, "c2", got[1].ID)
}

func TestFetch_SkipsChildrenWithoutID(t *testing.T) {
	f := &fakeReddit{
		submissions: []thingData{{ID: "", Title: "ghost"}, {ID: "p1", Title: "real"}},
	}
	c := newTestClient(t, f)

	got, err := c.Fetch(context.Background(), "alice", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}

func TestFetch_UnknownUser(t *testing.T) {
	f := &fakeReddit{}
	c := newTestClient(t, f)

	_, err := c.Fetch(context.Background(), "nobody", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Contains(t, err.Error(), "nobody")
}

func TestFetch_BadCredentials(t *testing.T) {
	f := &fakeReddit{tokenStatus: http.StatusUnauthorized}
	c := newTestClient(t, f)

	_, err := c.Fetch(context.Background(), "alice", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrAuthentication)
	assert.Equal(t, int32(0), f.apiHits.Load())
}

func TestFetch_StatusClassification(t *testing.T) {
	tests := []struct {
		name string
		path string
		code int
		want error
	}{
		{"forbidden comments", "/user/alice/comments", http.StatusForbidden, errs.ErrAuthentication},
		{"throttled", "/user/alice/submitted", http.StatusTooManyRequests, errs.ErrRateLimit},
		{"server error", "/user/alice/submitted", http.StatusBadGateway, errs.ErrTransientService},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeReddit{status: map[string]int{tt.path: tt.code}}
			c := newTestClient(t, f)

			_, err := c.Fetch(context.Background(), "alice", 5)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFetch_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewClient(Config{
		ClientID:     "cid",
		ClientSecret: "csecret",
		BaseURL:      base,
		TokenURL:     base + "/api/v1/access_token",
		SiteURL:      "https://reddit.com",
	}, nil)

	_, err := c.Fetch(context.Background(), "alice", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrTransientNetwork)
}
