// Package activity holds the normalized view of a user's posts and comments.
package activity

import (
	"context"
	"fmt"
)

// Kind distinguishes posts from comments.
type Kind string

const (
	KindPost    Kind = "post"
	KindComment Kind = "comment"
)

// Record is one post or comment with the metadata needed to cite it.
type Record struct {
	Kind Kind   `json:"type"`
	Body string `json:"body"`
	URL  string `json:"url"`
	ID   string `json:"id"`
}

// CitationKey returns "kind:id:url", the bracketed key the model cites.
func (r Record) CitationKey() string {
	return fmt.Sprintf("%s:%s:%s", r.Kind, r.ID, r.URL)
}

// Collection is the fetched activity for one user: posts first, then
// comments, each newest-first as the upstream returned them. It is not
// deduplicated.
type Collection []Record

// Counts tallies records by kind.
type Counts struct {
	Posts    int `json:"posts"`
	Comments int `json:"comments"`
}

// Counts tallies the collection by kind.
func (c Collection) Counts() Counts {
	var n Counts
	for _, r := range c {
		switch r.Kind {
		case KindPost:
			n.Posts++
		case KindComment:
			n.Comments++
		}
	}
	return n
}

// Fetcher retrieves up to limit posts and up to limit comments for a user.
type Fetcher interface {
	Fetch(ctx context.Context, username string, limit int) (Collection, error)
}
