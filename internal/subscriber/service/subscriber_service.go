package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/creativestories/backend/internal/common/constants"
	commonerrors "github.com/creativestories/backend/internal/common/errors"
	"github.com/creativestories/backend/internal/common/logger"
	"github.com/creativestories/backend/internal/observability/metrics"
	"github.com/creativestories/backend/internal/subscriber/domain"
	"github.com/creativestories/backend/internal/subscriber/repository"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type SubscriberService struct {
	repo repository.Repository
	log  *logger.Logger
}

func NewSubscriberService(repo repository.Repository, log *logger.Logger) *SubscriberService {
	return &SubscriberService{repo: repo, log: log}
}

// AddResult is a normal outcome, not an error: a malformed or duplicate
// email is expected user behavior and is reported through the message.
type AddResult struct {
	Success bool
	Message string
}

func (s *SubscriberService) Add(ctx context.Context, email string) (AddResult, error) {
	email = strings.TrimSpace(email)

	if email == "" || len(email) > constants.EmailMaxLength || !emailRegex.MatchString(email) {
		metrics.SubscriptionsTotal.WithLabelValues("invalid_email").Inc()
		return AddResult{Success: false, Message: "Please enter a valid email address"}, nil
	}

	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		metrics.SubscriptionsTotal.WithLabelValues("duplicate").Inc()
		return AddResult{Success: false, Message: "This email is already subscribed"}, nil
	}
	if !errors.Is(err, repository.ErrSubscriberNotFound) {
		return AddResult{}, s.mapStoreError(err, "SUBSCRIBER_LOOKUP_FAILED", "failed to check subscription")
	}

	// The check above and this insert are not atomic; two concurrent
	// submissions of the same address can both pass. Accepted.
	id, err := s.repo.Insert(ctx, email)
	if err != nil {
		return AddResult{}, s.mapStoreError(err, "SUBSCRIBER_INSERT_FAILED", "failed to subscribe")
	}

	metrics.SubscriptionsTotal.WithLabelValues("subscribed").Inc()
	s.log.WithFields(ctx, logger.Fields{"subscriber_id": string(id)}).Info("subscriber added")

	return AddResult{Success: true, Message: "Thanks for subscribing!"}, nil
}

func (s *SubscriberService) ListAll(ctx context.Context) ([]domain.Subscriber, error) {
	subscribers, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, s.mapStoreError(err, "SUBSCRIBER_LIST_FAILED", "failed to list subscribers")
	}
	return subscribers, nil
}

func (s *SubscriberService) ListActive(ctx context.Context) ([]domain.Subscriber, error) {
	subscribers, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, s.mapStoreError(err, "SUBSCRIBER_LIST_FAILED", "failed to list subscribers")
	}
	return subscribers, nil
}

func (s *SubscriberService) mapStoreError(err error, code, message string) error {
	if errors.Is(err, repository.ErrStoreNotInitialized) {
		return commonerrors.ErrStoreUnavailable.WithCause(err)
	}
	return newInternalError(code, message, err)
}
