// Package usecase contains application-level services.
package usecase

import (
	"fmt"

	"github.com/tesso57/rsstream/internal/domain/reading"
	"github.com/tesso57/rsstream/internal/domain/subscription"
)

// SubscriptionRepository abstracts persistence for feed subscriptions.
type SubscriptionRepository interface {
	List() ([]string, error)
	Add(url string) error
	Remove(url string) error
}

// SubscriptionService provides subscription-related operations.
type SubscriptionService struct {
	Repo SubscriptionRepository
}

// NewSubscriptionService constructs a SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository) SubscriptionService {
	return SubscriptionService{Repo: repo}
}

// List returns all subscribed feed URLs.
func (s SubscriptionService) List() ([]string, error) {
	return s.Repo.List()
}

// Add registers a new feed URL and returns the normalized URL with the
// updated list. Nothing is stored when the URL is blank or already present.
func (s SubscriptionService) Add(url string) (string, []string, error) {
	trimmed, ok := subscription.Normalize(url)
	if !ok {
		if trimmed == "" {
			return "", nil, reading.ErrEmptyURL
		}
		return "", nil, fmt.Errorf("feed url %q contains whitespace", trimmed)
	}
	feeds, err := s.Repo.List()
	if err != nil {
		return "", nil, err
	}
	if subscription.Contains(feeds, trimmed) {
		return trimmed, feeds, reading.ErrDuplicateSubscription
	}
	if err := s.Repo.Add(trimmed); err != nil {
		return "", nil, err
	}
	feeds, err = s.Repo.List()
	return trimmed, feeds, err
}

// Remove deletes a feed by URL and returns the updated list.
func (s SubscriptionService) Remove(url string) ([]string, error) {
	trimmed, _ := subscription.Normalize(url)
	feeds, err := s.Repo.List()
	if err != nil {
		return nil, err
	}
	if !subscription.Contains(feeds, trimmed) {
		return feeds, fmt.Errorf("remove %q: not subscribed: %w", trimmed, reading.ErrInvalidSelection)
	}
	if err := s.Repo.Remove(trimmed); err != nil {
		return nil, err
	}
	return s.Repo.List()
}
