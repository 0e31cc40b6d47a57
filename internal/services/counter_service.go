package services

import (
	"fmt"

	"github.com/gitpulse/gitpulse/internal/repositories"
)

// CounterService manages the named demo counters. Counters live next to
// the analyzer but are a separate key-value collaborator; they never
// touch the analysis pipeline.
type CounterService struct {
	counterRepo *repositories.CounterRepository
}

func NewCounterService(counterRepo *repositories.CounterRepository) *CounterService {
	return &CounterService{
		counterRepo: counterRepo,
	}
}

// GetCounter returns the current value of a named counter
func (s *CounterService) GetCounter(name string) (int64, error) {
	value, err := s.counterRepo.Get(name)
	if err != nil {
		return 0, fmt.Errorf("failed to get counter %s: %w", name, err)
	}
	return value, nil
}

// IncrementCounter increases a named counter by one and returns the new value
func (s *CounterService) IncrementCounter(name string) (int64, error) {
	value, err := s.counterRepo.Increment(name)
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter %s: %w", name, err)
	}
	return value, nil
}
