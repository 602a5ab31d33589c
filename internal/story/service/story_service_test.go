package service

import (
	"context"
	"errors"
	"testing"

	commonerrors "github.com/creativestories/backend/internal/common/errors"
	"github.com/creativestories/backend/internal/common/logger"
	"github.com/creativestories/backend/internal/story/domain"
	"github.com/creativestories/backend/internal/story/repository"
)

type mockStoryRepo struct {
	createFunc         func(ctx context.Context, story domain.Story) (domain.ID, error)
	listAllFunc        func(ctx context.Context) ([]domain.Story, error)
	findByIDFunc       func(ctx context.Context, id domain.ID) (domain.Story, error)
	findMostRecentFunc func(ctx context.Context) (domain.Story, error)
	createCalls        int
}

func (m *mockStoryRepo) Create(ctx context.Context, story domain.Story) (domain.ID, error) {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, story)
	}
	return "generated-id", nil
}

func (m *mockStoryRepo) ListAll(ctx context.Context) ([]domain.Story, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockStoryRepo) FindByID(ctx context.Context, id domain.ID) (domain.Story, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.Story{}, repository.ErrStoryNotFound
}

func (m *mockStoryRepo) FindMostRecent(ctx context.Context) (domain.Story, error) {
	if m.findMostRecentFunc != nil {
		return m.findMostRecentFunc(ctx)
	}
	return domain.Story{}, repository.ErrStoryNotFound
}

func setupStoryService(t *testing.T, repo *mockStoryRepo) *StoryService {
	t.Helper()

	log, err := logger.New("", "test", "info")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return NewStoryService(repo, log)
}

func TestCreate_RejectsMissingFields(t *testing.T) {
	testCases := []struct {
		name string
		in   CreateInput
	}{
		{"empty title", CreateInput{Author: "Ada", Content: "once"}},
		{"empty author", CreateInput{Title: "The Lighthouse", Content: "once"}},
		{"empty content", CreateInput{Title: "The Lighthouse", Author: "Ada"}},
		{"whitespace only", CreateInput{Title: "   ", Author: "\t", Content: "\n"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockStoryRepo{}
			svc := setupStoryService(t, repo)

			_, err := svc.Create(context.Background(), tc.in)
			if !errors.Is(err, ErrStoryValidation) {
				t.Errorf("expected ErrStoryValidation, got %v", err)
			}
			if repo.createCalls != 0 {
				t.Error("expected no store write on a rejected submission")
			}
		})
	}
}

func TestCreate_TrimsAndStores(t *testing.T) {
	var stored domain.Story
	repo := &mockStoryRepo{
		createFunc: func(ctx context.Context, story domain.Story) (domain.ID, error) {
			stored = story
			return "abc123", nil
		},
	}
	svc := setupStoryService(t, repo)

	id, err := svc.Create(context.Background(), CreateInput{
		Title:   "  The Lighthouse  ",
		Author:  " Ada ",
		Content: " once upon a time ",
		Tags:    []string{" fantasy ", "", "  ", "sea"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id != "abc123" {
		t.Errorf("unexpected id: %q", id)
	}
	if stored.Title != "The Lighthouse" || stored.Author != "Ada" || stored.Content != "once upon a time" {
		t.Errorf("expected trimmed fields, got %+v", stored)
	}
	if len(stored.Tags) != 2 || stored.Tags[0] != "fantasy" || stored.Tags[1] != "sea" {
		t.Errorf("expected empty tags to be dropped, got %v", stored.Tags)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := setupStoryService(t, &mockStoryRepo{})

	_, err := svc.GetByID(context.Background(), "missing")

	if !errors.Is(err, ErrStoryNotFound) {
		t.Fatalf("expected ErrStoryNotFound, got %v", err)
	}
	domainErr, _ := commonerrors.AsDomainError(err)
	if domainErr.HTTPStatus() != 404 {
		t.Errorf("expected status 404, got %d", domainErr.HTTPStatus())
	}
}

func TestGetByID_Found(t *testing.T) {
	repo := &mockStoryRepo{
		findByIDFunc: func(ctx context.Context, id domain.ID) (domain.Story, error) {
			return domain.Story{ID: id, Title: "The Lighthouse"}, nil
		},
	}
	svc := setupStoryService(t, repo)

	story, err := svc.GetByID(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if story.ID != "abc123" || story.Title != "The Lighthouse" {
		t.Errorf("unexpected story: %+v", story)
	}
}

func TestListAll_StoreUnavailable(t *testing.T) {
	repo := &mockStoryRepo{
		listAllFunc: func(ctx context.Context) ([]domain.Story, error) {
			return nil, repository.ErrStoreNotInitialized
		},
	}
	svc := setupStoryService(t, repo)

	_, err := svc.ListAll(context.Background())

	domainErr, ok := commonerrors.AsDomainError(err)
	if !ok {
		t.Fatalf("expected a domain error, got %v", err)
	}
	if domainErr.Code() != commonerrors.ErrStoreUnavailable.Code() {
		t.Errorf("expected store unavailable, got %s", domainErr.Code())
	}
	if domainErr.HTTPStatus() != 503 {
		t.Errorf("expected status 503, got %d", domainErr.HTTPStatus())
	}
}

func TestGetMostRecent_MapsNotFound(t *testing.T) {
	svc := setupStoryService(t, &mockStoryRepo{})

	_, err := svc.GetMostRecent(context.Background())
	if !errors.Is(err, ErrStoryNotFound) {
		t.Errorf("expected ErrStoryNotFound, got %v", err)
	}
}
