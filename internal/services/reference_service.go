package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gitpulse/gitpulse/internal/models"
)

// ReferenceService validates user-supplied repository URLs and extracts
// the owner/name pair. It performs no network calls.
type ReferenceService struct{}

func NewReferenceService() *ReferenceService {
	return &ReferenceService{}
}

// ParseRepositoryURL validates raw as an absolute GitHub repository URL and
// returns the owner and repository name taken from its first two path
// segments. Extra segments and a trailing slash are ignored.
func (s *ReferenceService) ParseRepositoryURL(raw string) (*models.RepositoryRef, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, models.NewValidationError(fmt.Sprintf("invalid repository URL: %s", raw))
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, models.NewValidationError(fmt.Sprintf("invalid repository URL: %s", raw))
	}

	host := strings.ToLower(parsed.Hostname())
	if host != "github.com" && host != "www.github.com" {
		return nil, models.NewValidationError(fmt.Sprintf("URL must point to github.com: %s", raw))
	}

	segments := splitPath(parsed.Path)
	if len(segments) < 2 {
		return nil, models.NewValidationError("URL must include an owner and a repository name")
	}

	return &models.RepositoryRef{
		Owner: segments[0],
		Name:  segments[1],
	}, nil
}

// splitPath splits a URL path into its non-empty segments
func splitPath(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}
