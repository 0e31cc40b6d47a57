package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gitpulse/gitpulse/internal/models"
	"github.com/gitpulse/gitpulse/pkg/config"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
)

// CommitService retrieves recent commit history from the GitHub API:
// one list request for the latest summaries, then one concurrent detail
// request per commit. The detail fan-out is all-or-nothing; a single
// failed or malformed response fails the whole batch.
type CommitService struct {
	client *github.Client
	limit  int
}

// NewCommitService creates a commit service from the application config.
// When a token is configured it is attached to every outbound request.
func NewCommitService(cfg *config.Config) (*CommitService, error) {
	var httpClient *http.Client
	if cfg.GitHub.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: cfg.GitHub.Token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	if cfg.GitHub.APIURL != "" {
		baseURL, err := url.Parse(ensureTrailingSlash(cfg.GitHub.APIURL))
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", cfg.GitHub.APIURL, err)
		}
		client.BaseURL = baseURL
	}

	return NewCommitServiceWithClient(client, cfg.Analysis.CommitLimit), nil
}

// NewCommitServiceWithClient creates a commit service around an existing
// GitHub client. Used by tests to point the service at a stub server.
func NewCommitServiceWithClient(client *github.Client, limit int) *CommitService {
	if limit < 2 || limit > config.MaxCommitLimit {
		limit = config.MaxCommitLimit
	}
	return &CommitService{
		client: client,
		limit:  limit,
	}
}

// FetchCommits returns the detail records for the most recent commits of
// the repository, in the upstream order (most recent first).
func (s *CommitService) FetchCommits(ctx context.Context, ref *models.RepositoryRef) ([]models.CommitDetail, error) {
	opts := &github.CommitsListOptions{
		ListOptions: github.ListOptions{
			PerPage: s.limit,
		},
	}

	summaries, _, err := s.client.Repositories.ListCommits(ctx, ref.Owner, ref.Name, opts)
	if err != nil {
		return nil, mapListError(err)
	}

	if len(summaries) < 2 {
		return nil, models.NewInsufficientHistoryError()
	}

	// One goroutine per commit, joined with a wait-for-all barrier.
	// Results are written back by index so the summary order survives
	// the unordered completion of the detail requests.
	details := make([]models.CommitDetail, len(summaries))
	g, ctx := errgroup.WithContext(ctx)
	for i, summary := range summaries {
		i, sha := i, summary.GetSHA()
		g.Go(func() error {
			commit, _, err := s.client.Repositories.GetCommit(ctx, ref.Owner, ref.Name, sha, nil)
			if err != nil {
				return mapDetailError(err)
			}

			detail, err := commitDetailFromGitHub(commit)
			if err != nil {
				return err
			}
			details[i] = detail
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return details, nil
}

// commitDetailFromGitHub converts an upstream commit into a CommitDetail,
// carrying absent fields through as nil pointers. A missing sha means the
// record is structurally unusable.
func commitDetailFromGitHub(commit *github.RepositoryCommit) (models.CommitDetail, error) {
	if commit == nil || commit.GetSHA() == "" {
		return models.CommitDetail{}, models.NewUpstreamDataError(errors.New("commit detail missing sha"))
	}

	detail := models.CommitDetail{
		SHA:     commit.GetSHA(),
		Message: commit.GetCommit().GetMessage(),
	}

	if author := commit.GetCommit().GetAuthor(); author != nil {
		if author.Name != nil {
			name := author.GetName()
			detail.AuthorName = &name
		}
		if author.Date != nil {
			date := author.GetDate().Time
			detail.Timestamp = &date
		}
	}

	if stats := commit.GetStats(); stats != nil {
		if stats.Additions != nil {
			additions := stats.GetAdditions()
			detail.Additions = &additions
		}
		if stats.Deletions != nil {
			deletions := stats.GetDeletions()
			detail.Deletions = &deletions
		}
	}

	return detail, nil
}

// mapListError translates a failed commit list request into the error
// taxonomy: 404 means the repository does not exist, 403 means the rate
// ceiling was hit, anything else is a generic upstream failure.
func mapListError(err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return models.NewRateLimitedError()
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return models.NewRateLimitedError()
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return models.NewRepositoryNotFoundError()
		case http.StatusForbidden:
			return models.NewRateLimitedError()
		default:
			return models.NewUpstreamError(respErr.Response.Status, err)
		}
	}

	return models.NewUpstreamError("request failed", err)
}

// mapDetailError translates a failed commit detail request. An undecodable
// body is a data problem; everything else is a generic upstream failure.
func mapDetailError(err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return models.NewUpstreamDataError(err)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return models.NewUpstreamDataError(err)
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return models.NewUpstreamError(respErr.Response.Status, err)
	}

	return models.NewUpstreamError("commit detail request failed", err)
}

func ensureTrailingSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}
