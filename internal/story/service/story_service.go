package service

import (
	"context"
	"errors"
	"strings"

	commonerrors "github.com/creativestories/backend/internal/common/errors"
	"github.com/creativestories/backend/internal/common/logger"
	"github.com/creativestories/backend/internal/observability/metrics"
	"github.com/creativestories/backend/internal/story/domain"
	"github.com/creativestories/backend/internal/story/repository"
)

type StoryService struct {
	repo repository.Repository
	log  *logger.Logger
}

func NewStoryService(repo repository.Repository, log *logger.Logger) *StoryService {
	return &StoryService{repo: repo, log: log}
}

type CreateInput struct {
	Title   string
	Author  string
	Content string
	Tags    []string
}

// Create validates the submission and stores it. Whitespace-only fields
// count as empty.
func (s *StoryService) Create(ctx context.Context, in CreateInput) (domain.ID, error) {
	title := strings.TrimSpace(in.Title)
	author := strings.TrimSpace(in.Author)
	content := strings.TrimSpace(in.Content)

	if title == "" || author == "" || content == "" {
		return "", ErrStoryValidation
	}

	tags := make([]string, 0, len(in.Tags))
	for _, tag := range in.Tags {
		if t := strings.TrimSpace(tag); t != "" {
			tags = append(tags, t)
		}
	}

	id, err := s.repo.Create(ctx, domain.Story{
		Title:   title,
		Author:  author,
		Content: content,
		Tags:    tags,
	})
	if err != nil {
		return "", s.mapStoreError(err, "STORY_CREATE_FAILED", "failed to create story")
	}

	metrics.StoriesCreatedTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"story_id": string(id),
		"author":   author,
	}).Info("story created")

	return id, nil
}

func (s *StoryService) ListAll(ctx context.Context) ([]domain.Story, error) {
	stories, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, s.mapStoreError(err, "STORY_LIST_FAILED", "failed to list stories")
	}
	return stories, nil
}

func (s *StoryService) GetByID(ctx context.Context, id domain.ID) (domain.Story, error) {
	story, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStoryNotFound) {
			return domain.Story{}, ErrStoryNotFound
		}
		return domain.Story{}, s.mapStoreError(err, "STORY_GET_FAILED", "failed to get story")
	}
	return story, nil
}

func (s *StoryService) GetMostRecent(ctx context.Context) (domain.Story, error) {
	story, err := s.repo.FindMostRecent(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrStoryNotFound) {
			return domain.Story{}, ErrStoryNotFound
		}
		return domain.Story{}, s.mapStoreError(err, "STORY_GET_FAILED", "failed to get story")
	}
	return story, nil
}

func (s *StoryService) mapStoreError(err error, code, message string) error {
	if errors.Is(err, repository.ErrStoreNotInitialized) {
		return commonerrors.ErrStoreUnavailable.WithCause(err)
	}
	return newInternalError(code, message, err)
}
