package handlers

import (
	// Go Internal Packages
	"context"
	"net/http"

	// Local Packages
	helpers "pay-stream/helpers"
	models "pay-stream/models"
	payments "pay-stream/services/payments"

	// External Packages
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const PaymentAcceptedMessage = "Payment received and being processed"

type PaymentService interface {
	Submit(ctx context.Context, req models.PaymentRequest) (models.Transaction, error)
	GetByID(ctx context.Context, id int64) (models.Transaction, error)
	GetByUser(ctx context.Context, userID int64) ([]models.Transaction, error)
	GetPage(ctx context.Context, page, limit int) ([]models.Transaction, error)
	History(ctx context.Context, limit int) ([]models.TransactionSummary, error)
}

type PaymentsHandler struct {
	service PaymentService
	logger  *zap.Logger
}

func NewPaymentsHandler(service PaymentService, logger *zap.Logger) *PaymentsHandler {
	return &PaymentsHandler{service: service, logger: logger}
}

func (h *PaymentsHandler) Register(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.Post("/", h.submit)
		r.Post("/process", h.submit)
		r.Get("/", h.list)
		r.Get("/history", h.history)
		r.Get("/user/{userId}", h.byUser)
		r.Get("/{id}", h.get)
	})
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Count int `json:"count"`
}

func (h *PaymentsHandler) submit(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	tx, err := h.service.Submit(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"transaction": tx,
		"message":     PaymentAcceptedMessage,
	})
}

func (h *PaymentsHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	tx, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transaction": tx})
}

func (h *PaymentsHandler) byUser(w http.ResponseWriter, r *http.Request) {
	userID, err := helpers.PathID(r, "userId")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	txs, err := h.service.GetByUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": txs, "count": len(txs)})
}

func (h *PaymentsHandler) list(w http.ResponseWriter, r *http.Request) {
	page, err := helpers.QueryInt(r, "page", 1)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	limit, err := helpers.QueryInt(r, "limit", payments.DefaultPageLimit)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	txs, err := h.service.GetPage(r.Context(), page, limit)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": txs,
		"pagination":   Pagination{Page: page, Limit: limit, Count: len(txs)},
	})
}

func (h *PaymentsHandler) history(w http.ResponseWriter, r *http.Request) {
	limit, err := helpers.QueryInt(r, "limit", payments.DefaultHistoryLimit)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	summaries, err := h.service.History(r.Context(), limit)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": summaries, "count": len(summaries)})
}
