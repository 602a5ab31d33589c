package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	commonhttp "github.com/creativestories/backend/internal/common/http"
	"github.com/creativestories/backend/internal/common/logger"
	"github.com/creativestories/backend/internal/story/domain"
	"github.com/creativestories/backend/internal/story/service"
)

type createStoryRequest struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Author  string   `json:"author" validate:"required,max=100"`
	Content string   `json:"content" validate:"required,max=102400"`
	Tags    []string `json:"tags" validate:"omitempty,max=10,dive,max=30"`
}

type createStoryResponse struct {
	ID string `json:"id"`
}

type storyResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
}

type Handler struct {
	stories  *service.StoryService
	validate *validator.Validate
	timeout  time.Duration
	log      *logger.Logger
}

func NewHandler(stories *service.StoryService, timeout time.Duration, log *logger.Logger) http.Handler {
	h := &Handler{
		stories:  stories,
		validate: validator.New(),
		timeout:  timeout,
		log:      log,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/stories", h.storiesRoot)
	mux.HandleFunc("/api/stories/", h.storyByID)
	return mux
}

func (h *Handler) storiesRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	stories, err := h.stories.ListAll(ctx)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	resp := make([]storyResponse, 0, len(stories))
	for _, story := range stories {
		resp = append(resp, toStoryResponse(story))
	}

	commonhttp.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createStoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warnf("story create failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.log.Warnf("story create failed: invalid payload: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeBadRequest, "title, author and content are required", nil, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := h.stories.Create(ctx, service.CreateInput{
		Title:   req.Title,
		Author:  req.Author,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, createStoryResponse{ID: string(id)})
}

func (h *Handler) storyByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/stories/")
	if id == "" || strings.Contains(id, "/") {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeStoryIDRequired, "story id is required", nil, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	story, err := h.stories.GetByID(ctx, domain.ID(id))
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toStoryResponse(story))
}

func toStoryResponse(story domain.Story) storyResponse {
	tags := story.Tags
	if tags == nil {
		tags = []string{}
	}
	return storyResponse{
		ID:        string(story.ID),
		Title:     story.Title,
		Author:    story.Author,
		Content:   story.Content,
		Tags:      tags,
		CreatedAt: story.CreatedAt,
	}
}
