package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/creativestories/backend/internal/common/clock"
	commonerrors "github.com/creativestories/backend/internal/common/errors"
	"github.com/creativestories/backend/internal/common/logger"
	"github.com/creativestories/backend/internal/mail"
	"github.com/creativestories/backend/internal/newsletter/compose"
	"github.com/creativestories/backend/internal/observability/metrics"
	storyrepo "github.com/creativestories/backend/internal/story/repository"
	subscriberrepo "github.com/creativestories/backend/internal/subscriber/repository"
)

// Report summarizes one dispatch run. SubscriberCount is the size of the
// audience; SentCount and FailedCount split it by delivery outcome.
type Report struct {
	DispatchID      string
	StoryTitle      string
	SubscriberCount int
	SentCount       int
	FailedCount     int
}

type DispatcherDeps struct {
	Stories     storyrepo.Repository
	Subscribers subscriberrepo.Repository
	Composer    *compose.Composer
	Sender      mail.Sender
	APIKey      string
	Clock       clock.Clock
	Log         *logger.Logger
}

type Dispatcher struct {
	stories     storyrepo.Repository
	subscribers subscriberrepo.Repository
	composer    *compose.Composer
	sender      mail.Sender
	apiKey      string
	clock       clock.Clock
	log         *logger.Logger
}

func NewDispatcher(deps DispatcherDeps) *Dispatcher {
	return &Dispatcher{
		stories:     deps.Stories,
		subscribers: deps.Subscribers,
		composer:    deps.Composer,
		sender:      deps.Sender,
		apiKey:      deps.APIKey,
		clock:       deps.Clock,
		log:         deps.Log,
	}
}

// Dispatch sends the most recent story to every active subscriber. The
// credential check runs before any store read. Per-recipient send failures
// are isolated and counted; they never fail the batch.
func (d *Dispatcher) Dispatch(ctx context.Context, providedKey string) (Report, error) {
	if subtle.ConstantTimeCompare([]byte(providedKey), []byte(d.apiKey)) != 1 {
		metrics.NewsletterDispatchesTotal.WithLabelValues("unauthorized").Inc()
		return Report{}, commonerrors.ErrUnauthorized
	}

	start := d.clock.Now()
	dispatchID := uuid.NewString()

	story, err := d.stories.FindMostRecent(ctx)
	if err != nil {
		if errors.Is(err, storyrepo.ErrStoryNotFound) {
			metrics.NewsletterDispatchesTotal.WithLabelValues("no_stories").Inc()
			return Report{}, ErrNoStories
		}
		metrics.NewsletterDispatchesTotal.WithLabelValues("error").Inc()
		return Report{}, d.mapStoreError(err, "NEWSLETTER_SOURCE_FAILED", "failed to load the latest story")
	}

	subscribers, err := d.subscribers.ListActive(ctx)
	if err != nil {
		metrics.NewsletterDispatchesTotal.WithLabelValues("error").Inc()
		return Report{}, d.mapStoreError(err, "NEWSLETTER_AUDIENCE_FAILED", "failed to load subscribers")
	}

	email, err := d.composer.Compose(story)
	if err != nil {
		metrics.NewsletterDispatchesTotal.WithLabelValues("error").Inc()
		return Report{}, newInternalError("NEWSLETTER_COMPOSE_FAILED", "failed to compose newsletter", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	for _, sub := range subscribers {
		wg.Add(1)
		go func(recipient string) {
			defer wg.Done()
			if err := d.sender.Send(ctx, recipient, email.Subject, email.HTML); err != nil {
				d.log.WithFields(ctx, logger.Fields{
					"dispatch_id": dispatchID,
					"recipient":   recipient,
				}).Errorf("newsletter send failed: %v", err)
				metrics.NewsletterEmailsTotal.WithLabelValues("failed").Inc()
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			metrics.NewsletterEmailsTotal.WithLabelValues("sent").Inc()
		}(sub.Email)
	}
	wg.Wait()

	metrics.NewsletterDispatchesTotal.WithLabelValues("ok").Inc()
	metrics.NewsletterDispatchDurationSeconds.Observe(d.clock.Since(start).Seconds())

	report := Report{
		DispatchID:      dispatchID,
		StoryTitle:      story.Title,
		SubscriberCount: len(subscribers),
		SentCount:       len(subscribers) - failed,
		FailedCount:     failed,
	}

	d.log.WithFields(ctx, logger.Fields{
		"dispatch_id": dispatchID,
		"story_title": report.StoryTitle,
		"subscribers": report.SubscriberCount,
		"sent":        report.SentCount,
		"failed":      report.FailedCount,
	}).Info("newsletter dispatched")

	return report, nil
}

func (d *Dispatcher) mapStoreError(err error, code, message string) error {
	if errors.Is(err, storyrepo.ErrStoreNotInitialized) || errors.Is(err, subscriberrepo.ErrStoreNotInitialized) {
		return commonerrors.ErrStoreUnavailable.WithCause(err)
	}
	return newInternalError(code, message, err)
}
