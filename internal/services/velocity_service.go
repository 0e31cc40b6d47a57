package services

import (
	"math"
	"strings"

	"github.com/gitpulse/gitpulse/internal/models"
)

// unknownAuthor substitutes a missing author name. Reconciliation already
// drops authorless commits, so this only covers direct Calculate callers.
const unknownAuthor = "Unknown Author"

// VelocityService turns a fetched commit list into the velocity time
// series: it filters incomplete records, computes per-interval velocity
// between adjacent valid commits and orders the result chronologically.
type VelocityService struct{}

func NewVelocityService() *VelocityService {
	return &VelocityService{}
}

// Reconcile filters the commit details down to the records usable for
// velocity computation. Relative order is preserved and incomplete
// records are dropped silently.
func (s *VelocityService) Reconcile(details []models.CommitDetail) []models.ValidCommit {
	valid := make([]models.ValidCommit, 0, len(details))
	for i := range details {
		if commit, ok := details[i].ToValid(); ok {
			valid = append(valid, commit)
		}
	}
	return valid
}

// Calculate emits one velocity point per adjacent pair of valid commits.
// The input must be ordered most recent first; index i is the later commit
// of the pair and i+1 the earlier one. Fewer than two commits yield an
// empty series, not an error.
func (s *VelocityService) Calculate(commits []models.ValidCommit) []models.VelocityPoint {
	points := make([]models.VelocityPoint, 0)
	for i := 0; i+1 < len(commits); i++ {
		current := commits[i]
		previous := commits[i+1]

		elapsed := math.Round(current.Timestamp.Sub(previous.Timestamp).Minutes())
		if elapsed < 1 {
			// Sub-minute bursts count as one whole minute.
			elapsed = 1
		}

		totalChanges := current.Additions + current.Deletions
		velocity := roundTwoDecimals(float64(totalChanges) / elapsed)

		author := current.AuthorName
		if author == "" {
			author = unknownAuthor
		}

		points = append(points, models.VelocityPoint{
			SHA:       current.SHA,
			Date:      current.Timestamp,
			Velocity:  velocity,
			Author:    author,
			Message:   firstLine(current.Message),
			Additions: current.Additions,
			Deletions: current.Deletions,
		})
	}
	return points
}

// Assemble reverses the most-recent-pair-first output of Calculate into
// chronologically ascending order. The result is never nil.
func (s *VelocityService) Assemble(points []models.VelocityPoint) []models.VelocityPoint {
	ordered := make([]models.VelocityPoint, 0, len(points))
	for i := len(points) - 1; i >= 0; i-- {
		ordered = append(ordered, points[i])
	}
	return ordered
}

func roundTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}

func firstLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		return message[:idx]
	}
	return message
}
