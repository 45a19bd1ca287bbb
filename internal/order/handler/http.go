package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/fekuna/perfume-order-service/internal/order"
	"github.com/fekuna/perfume-order-service/internal/order/dto"
	"github.com/fekuna/perfume-order-service/internal/validation"
	"github.com/fekuna/perfume-order-service/pkg/i18n"
	"github.com/fekuna/perfume-order-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// maxBodyBytes bounds a POST body. Orders only carry image URLs, never image data.
const maxBodyBytes = 1 << 20

type OrderHandler struct {
	uc     order.UseCase
	tr     *i18n.Translator
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, tr *i18n.Translator, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		tr:     tr,
		logger: log,
	}
}

func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Health)
	r.Post("/", h.PlaceOrder)
}

// Health handles GET /.
func (h *OrderHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.HealthReply{
		Status:  "OK",
		Message: h.tr.T(language(r), "health.running", nil),
	})
}

// PlaceOrder handles POST /.
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	lang := language(r)

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.reject(w, r, http.StatusBadRequest, "order.invalid_payload", err, raw)
		return
	}
	capturePayload(r, raw)

	var req dto.PlaceOrderRequest
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.reject(w, r, http.StatusBadRequest, "order.invalid_payload", err, raw)
		return
	}

	res, err := h.uc.PlaceOrder(r.Context(), &req)
	if err != nil {
		var verr *validation.Error
		switch {
		case errors.As(err, &verr):
			if categoryRejection(verr.MessageID) {
				h.logger.Warn("order with bad order type", zap.Error(err))
				h.recordFailure(r, &dto.FailureRecord{Message: err.Error(), Payload: string(raw)})
			}
			writeJSON(w, http.StatusOK, dto.PlaceOrderReply{
				Success: false,
				Message: h.tr.T(lang, verr.MessageID, verr.Data),
			})
		case errors.Is(err, order.ErrDuplicateSubmission):
			writeJSON(w, http.StatusOK, dto.PlaceOrderReply{
				Success: false,
				Message: h.tr.T(lang, "order.duplicate", nil),
			})
		default:
			h.logger.Error("failed to place order", zap.Error(err))
			h.recordFailure(r, &dto.FailureRecord{
				Message: err.Error(),
				Payload: string(raw),
				Stack:   fmt.Sprintf("%+v", err),
			})
			writeJSON(w, http.StatusInternalServerError, dto.PlaceOrderReply{
				Success: false,
				Message: h.tr.T(lang, "order.failed", map[string]interface{}{"Reason": err.Error()}),
				Error:   err.Error(),
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.PlaceOrderReply{
		Success:     true,
		Message:     h.tr.T(lang, "order.accepted", nil),
		OrderNumber: res.OrderNumber,
	})
}

func (h *OrderHandler) reject(w http.ResponseWriter, r *http.Request, status int, id string, err error, raw []byte) {
	h.logger.Warn("rejected order payload", zap.Error(err))
	h.recordFailure(r, &dto.FailureRecord{
		Message: err.Error(),
		Payload: string(raw),
	})
	writeJSON(w, status, dto.PlaceOrderReply{
		Success: false,
		Message: h.tr.T(language(r), id, nil),
		Error:   err.Error(),
	})
}

func categoryRejection(id string) bool {
	return id == "order.missing_category" || id == "order.unknown_category"
}

// recordFailure writes to the errors sheet. A failure here is only logged.
func (h *OrderHandler) recordFailure(r *http.Request, f *dto.FailureRecord) {
	if err := h.uc.RecordFailure(r.Context(), f); err != nil {
		h.logger.Error("failed to record failure", zap.Error(err))
	}
}

func language(r *http.Request) string {
	return r.Header.Get("Accept-Language")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
