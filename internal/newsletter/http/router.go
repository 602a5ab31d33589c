package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	commonerrors "github.com/creativestories/backend/internal/common/errors"
	commonhttp "github.com/creativestories/backend/internal/common/http"
	"github.com/creativestories/backend/internal/common/logger"
	"github.com/creativestories/backend/internal/newsletter/service"
)

type dispatchSuccessResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	StoryTitle      string `json:"storyTitle"`
	SubscriberCount int    `json:"subscriberCount"`
}

type dispatchFailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Handler struct {
	dispatcher *service.Dispatcher
	timeout    time.Duration
	log        *logger.Logger
}

func NewHandler(dispatcher *service.Dispatcher, timeout time.Duration, log *logger.Logger) http.Handler {
	h := &Handler{
		dispatcher: dispatcher,
		timeout:    timeout,
		log:        log,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/send-newsletter", h.sendNewsletter)
	return mux
}

// sendNewsletter is the admin trigger. Whatever goes wrong inside the
// dispatcher, the response body keeps the {success, message} shape.
func (h *Handler) sendNewsletter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	apiKey := r.URL.Query().Get("apiKey")

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	report, err := h.dispatcher.Dispatch(ctx, apiKey)
	if err != nil {
		h.writeDispatchError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, dispatchSuccessResponse{
		Success:         true,
		Message:         fmt.Sprintf("Newsletter sent to %d subscribers", report.SubscriberCount),
		StoryTitle:      report.StoryTitle,
		SubscriberCount: report.SubscriberCount,
	})
}

func (h *Handler) writeDispatchError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		status = domainErr.HTTPStatus()
		message = domainErr.Message()
	}

	h.log.WithFields(r.Context(), logger.Fields{
		"status": status,
		"action": "dispatch_failed",
	}).Warnf("newsletter dispatch failed: %v", err)

	commonhttp.WriteJSON(w, status, dispatchFailureResponse{
		Success: false,
		Message: message,
	})
}
