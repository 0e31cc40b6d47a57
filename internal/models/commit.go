package models

import (
	"time"
)

// CommitDetail represents a single commit as returned by the GitHub API.
// Only the SHA is guaranteed; every other field may be missing when the
// upstream record is incomplete, so those are pointer-typed.
type CommitDetail struct {
	SHA        string     `json:"sha"`
	AuthorName *string    `json:"author_name"`
	Timestamp  *time.Time `json:"timestamp"`
	Message    string     `json:"message"`
	Additions  *int       `json:"additions"`
	Deletions  *int       `json:"deletions"`
}

// IsComplete reports whether the record carries everything the velocity
// computation needs: an author identity, a timestamp and both line counts.
func (c *CommitDetail) IsComplete() bool {
	return c.AuthorName != nil && c.Timestamp != nil && c.Additions != nil && c.Deletions != nil
}

// ValidCommit is a CommitDetail whose optional fields are all present.
// Only valid commits participate in velocity computation.
type ValidCommit struct {
	SHA        string    `json:"sha"`
	AuthorName string    `json:"author_name"`
	Timestamp  time.Time `json:"timestamp"`
	Message    string    `json:"message"`
	Additions  int       `json:"additions"`
	Deletions  int       `json:"deletions"`
}

// ToValid converts a complete CommitDetail into a ValidCommit.
// The second return value is false when required fields are missing.
func (c *CommitDetail) ToValid() (ValidCommit, bool) {
	if !c.IsComplete() {
		return ValidCommit{}, false
	}
	return ValidCommit{
		SHA:        c.SHA,
		AuthorName: *c.AuthorName,
		Timestamp:  *c.Timestamp,
		Message:    c.Message,
		Additions:  *c.Additions,
		Deletions:  *c.Deletions,
	}, true
}
