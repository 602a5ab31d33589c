package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/creativestories/backend/internal/common/logger"
	"github.com/creativestories/backend/internal/story/domain"
	"github.com/creativestories/backend/internal/story/repository"
	"github.com/creativestories/backend/internal/story/service"
)

type stubStoryRepo struct {
	stories []domain.Story
	created *domain.Story
}

func (s *stubStoryRepo) Create(ctx context.Context, story domain.Story) (domain.ID, error) {
	s.created = &story
	return "abc123", nil
}

func (s *stubStoryRepo) ListAll(ctx context.Context) ([]domain.Story, error) {
	return s.stories, nil
}

func (s *stubStoryRepo) FindByID(ctx context.Context, id domain.ID) (domain.Story, error) {
	for _, story := range s.stories {
		if story.ID == id {
			return story, nil
		}
	}
	return domain.Story{}, repository.ErrStoryNotFound
}

func (s *stubStoryRepo) FindMostRecent(ctx context.Context) (domain.Story, error) {
	if len(s.stories) == 0 {
		return domain.Story{}, repository.ErrStoryNotFound
	}
	return s.stories[0], nil
}

func setupStoryHandler(t *testing.T, repo *stubStoryRepo) http.Handler {
	t.Helper()

	log, err := logger.New("", "test", "info")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return NewHandler(service.NewStoryService(repo, log), 5*time.Second, log)
}

func TestListStories_Empty(t *testing.T) {
	handler := setupStoryHandler(t, &stubStoryRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/stories", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("expected an empty array, got %q", body)
	}
}

func TestListStories_ReturnsStories(t *testing.T) {
	repo := &stubStoryRepo{
		stories: []domain.Story{
			{ID: "2", Title: "Newest", Author: "Ada", Content: "b", CreatedAt: time.Now()},
			{ID: "1", Title: "Oldest", Author: "Ada", Content: "a", CreatedAt: time.Now().Add(-time.Hour)},
		},
	}
	handler := setupStoryHandler(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/stories", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body []struct {
		ID    string   `json:"id"`
		Title string   `json:"title"`
		Tags  []string `json:"tags"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body) != 2 || body[0].Title != "Newest" {
		t.Errorf("unexpected body: %+v", body)
	}
	if body[0].Tags == nil {
		t.Error("expected tags to serialize as an empty array, not null")
	}
}

func TestCreateStory(t *testing.T) {
	repo := &stubStoryRepo{}
	handler := setupStoryHandler(t, repo)

	payload := `{"title":"The Lighthouse","author":"Ada","content":"once upon a time","tags":["sea"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/stories", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.ID != "abc123" {
		t.Errorf("unexpected id: %q", body.ID)
	}
	if repo.created == nil || repo.created.Title != "The Lighthouse" {
		t.Errorf("unexpected stored story: %+v", repo.created)
	}
}

func TestCreateStory_InvalidJSON(t *testing.T) {
	handler := setupStoryHandler(t, &stubStoryRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/stories", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestCreateStory_MissingFields(t *testing.T) {
	repo := &stubStoryRepo{}
	handler := setupStoryHandler(t, repo)

	req := httptest.NewRequest(http.MethodPost, "/api/stories", strings.NewReader(`{"title":"only a title"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if repo.created != nil {
		t.Error("expected no story to be stored")
	}
}

func TestGetStory_Found(t *testing.T) {
	repo := &stubStoryRepo{
		stories: []domain.Story{{ID: "abc123", Title: "The Lighthouse", Author: "Ada", Content: "once"}},
	}
	handler := setupStoryHandler(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/stories/abc123", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var body struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.ID != "abc123" || body.Title != "The Lighthouse" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestGetStory_NotFound(t *testing.T) {
	handler := setupStoryHandler(t, &stubStoryRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/stories/missing", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestStories_MethodNotAllowed(t *testing.T) {
	handler := setupStoryHandler(t, &stubStoryRepo{})

	req := httptest.NewRequest(http.MethodDelete, "/api/stories", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}
}
