package http

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	commonhttp "github.com/creativestories/backend/internal/common/http"
	"github.com/creativestories/backend/internal/common/logger"
	"github.com/creativestories/backend/internal/subscriber/domain"
	"github.com/creativestories/backend/internal/subscriber/service"
)

type subscribeRequest struct {
	Email string `json:"email"`
}

type subscribeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type subscriberResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
	Status       string    `json:"status"`
}

type subscriberListResponse struct {
	Subscribers []subscriberResponse `json:"subscribers"`
	Count       int                  `json:"count"`
}

type Handler struct {
	subscribers *service.SubscriberService
	adminKey    string
	timeout     time.Duration
	log         *logger.Logger
}

func NewHandler(subscribers *service.SubscriberService, adminKey string, timeout time.Duration, log *logger.Logger) http.Handler {
	h := &Handler{
		subscribers: subscribers,
		adminKey:    adminKey,
		timeout:     timeout,
		log:         log,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/subscribe", h.subscribe)
	mux.HandleFunc("/api/subscribers", h.listSubscribers)
	return mux
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warnf("subscribe failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.subscribers.Add(ctx, req.Email)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, subscribeResponse{
		Success: result.Success,
		Message: result.Message,
	})
}

// listSubscribers backs the admin subscriber table. It shares the
// newsletter dispatch secret rather than carrying its own auth model.
func (h *Handler) listSubscribers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	apiKey := r.URL.Query().Get("apiKey")
	if subtle.ConstantTimeCompare([]byte(apiKey), []byte(h.adminKey)) != 1 {
		commonhttp.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	subscribers, err := h.subscribers.ListAll(ctx)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	resp := subscriberListResponse{
		Subscribers: make([]subscriberResponse, 0, len(subscribers)),
		Count:       len(subscribers),
	}
	for _, sub := range subscribers {
		resp.Subscribers = append(resp.Subscribers, toSubscriberResponse(sub))
	}

	commonhttp.WriteJSON(w, http.StatusOK, resp)
}

func toSubscriberResponse(sub domain.Subscriber) subscriberResponse {
	return subscriberResponse{
		ID:           string(sub.ID),
		Email:        sub.Email,
		SubscribedAt: sub.SubscribedAt,
		Status:       string(sub.Status),
	}
}
