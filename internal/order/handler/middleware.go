package handler

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/fekuna/perfume-order-service/internal/order/dto"
	"go.uber.org/zap"
)

type payloadKey struct{}

type payload struct {
	raw []byte
}

// capturePayload makes the request body available to Recoverer.
func capturePayload(r *http.Request, raw []byte) {
	if p, ok := r.Context().Value(payloadKey{}).(*payload); ok {
		p.raw = raw
	}
}

// Recoverer turns a panic into a JSON 500 reply and an errors sheet row.
func (h *OrderHandler) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := &payload{}
		r = r.WithContext(context.WithValue(r.Context(), payloadKey{}, body))

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			msg := fmt.Sprint(rec)
			stack := string(debug.Stack())
			h.logger.Error("panic while handling request",
				zap.String("panic", msg),
				zap.String("path", r.URL.Path),
			)
			h.recordFailure(r, &dto.FailureRecord{Message: msg, Payload: string(body.raw), Stack: stack})

			writeJSON(w, http.StatusInternalServerError, dto.PlaceOrderReply{
				Success: false,
				Message: h.tr.T(language(r), "order.failed", map[string]interface{}{"Reason": msg}),
				Error:   msg,
			})
		}()

		next.ServeHTTP(w, r)
	})
}
