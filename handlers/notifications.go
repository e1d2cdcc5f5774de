package handlers

import (
	// Go Internal Packages
	"context"
	"net/http"

	// Local Packages
	helpers "pay-stream/helpers"
	models "pay-stream/models"
	notifications "pay-stream/services/notifications"

	// External Packages
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NotificationService interface {
	Send(ctx context.Context, req models.DirectNotification) (models.Notification, error)
	All(ctx context.Context) ([]models.Notification, error)
	ByUser(ctx context.Context, userID int64) ([]models.Notification, error)
	ByTransaction(ctx context.Context, transactionID int64) ([]models.Notification, error)
	Recent(ctx context.Context, limit int) ([]models.Notification, error)
	Stats(ctx context.Context) (models.NotificationStats, error)
}

type NotificationsHandler struct {
	service NotificationService
	logger  *zap.Logger
}

func NewNotificationsHandler(service NotificationService, logger *zap.Logger) *NotificationsHandler {
	return &NotificationsHandler{service: service, logger: logger}
}

func (h *NotificationsHandler) Register(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Post("/", h.send)
		r.Post("/send", h.send)
		r.Get("/", h.all)
		r.Get("/stats", h.stats)
		r.Get("/history", h.history)
		r.Get("/user/{userId}", h.byUser)
		r.Get("/transaction/{transactionId}", h.byTransaction)
	})
}

func (h *NotificationsHandler) send(w http.ResponseWriter, r *http.Request) {
	var req models.DirectNotification
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	n, err := h.service.Send(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"notification": n, "message": "Notification sent"})
}

func (h *NotificationsHandler) all(w http.ResponseWriter, r *http.Request) {
	ns, err := h.service.All(r.Context())
	h.writeList(w, r, ns, err)
}

func (h *NotificationsHandler) byUser(w http.ResponseWriter, r *http.Request) {
	userID, err := helpers.PathID(r, "userId")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	ns, err := h.service.ByUser(r.Context(), userID)
	h.writeList(w, r, ns, err)
}

func (h *NotificationsHandler) byTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID, err := helpers.PathID(r, "transactionId")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	ns, err := h.service.ByTransaction(r.Context(), transactionID)
	h.writeList(w, r, ns, err)
}

func (h *NotificationsHandler) history(w http.ResponseWriter, r *http.Request) {
	limit, err := helpers.QueryInt(r, "limit", notifications.DefaultHistoryLimit)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	ns, err := h.service.Recent(r.Context(), limit)
	h.writeList(w, r, ns, err)
}

func (h *NotificationsHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
}

func (h *NotificationsHandler) writeList(w http.ResponseWriter, r *http.Request, ns []models.Notification, err error) {
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": ns, "count": len(ns)})
}
