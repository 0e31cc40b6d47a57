package services

import (
	"context"

	"github.com/gitpulse/gitpulse/internal/models"
	"github.com/gitpulse/gitpulse/pkg/logger"
	"github.com/sirupsen/logrus"
)

// AnalysisService runs the full commit-velocity pipeline: validate the
// repository URL, fetch commit details, reconcile incomplete records,
// compute per-interval velocity and assemble the chronological series.
// All state is scoped to one call; nothing is cached between requests.
type AnalysisService struct {
	referenceService *ReferenceService
	commitService    *CommitService
	velocityService  *VelocityService
}

func NewAnalysisService(
	referenceService *ReferenceService,
	commitService *CommitService,
	velocityService *VelocityService,
) *AnalysisService {
	return &AnalysisService{
		referenceService: referenceService,
		commitService:    commitService,
		velocityService:  velocityService,
	}
}

// Analyze turns a repository URL into its velocity time series. An empty
// series means the history had too few analyzable commits after
// reconciliation; it is a valid result, not a failure.
func (s *AnalysisService) Analyze(ctx context.Context, rawURL string) ([]models.VelocityPoint, error) {
	ref, err := s.referenceService.ParseRepositoryURL(rawURL)
	if err != nil {
		return nil, err
	}

	details, err := s.commitService.FetchCommits(ctx, ref)
	if err != nil {
		return nil, err
	}

	valid := s.velocityService.Reconcile(details)
	points := s.velocityService.Calculate(valid)

	logger.WithFields(logrus.Fields{
		"owner":   ref.Owner,
		"repo":    ref.Name,
		"fetched": len(details),
		"valid":   len(valid),
		"points":  len(points),
	}).Info("analysis completed")

	return s.velocityService.Assemble(points), nil
}
