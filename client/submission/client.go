// Package submission sends a completed form to the order endpoint.
package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/fekuna/perfume-order-service/client/form"
	"github.com/fekuna/perfume-order-service/internal/model"
	"github.com/fekuna/perfume-order-service/internal/order/dto"
	"github.com/fekuna/perfume-order-service/internal/pricing"
	"github.com/fekuna/perfume-order-service/internal/shipping"
	"github.com/fekuna/perfume-order-service/internal/validation"
	"github.com/fekuna/perfume-order-service/pkg/i18n"
	"github.com/fekuna/perfume-order-service/pkg/logger"
	"go.uber.org/zap"
)

var ErrInFlight = errors.New("submission already in progress")

type Config struct {
	Endpoint string
	Timeout  time.Duration
	Language string
}

// Result is what the customer is shown after a submit or ping.
type Result struct {
	Success     bool
	Message     string
	OrderNumber string
	Err         error
}

type Client struct {
	http     *http.Client
	endpoint string
	lang     string
	pricing  pricing.Table
	tr       *i18n.Translator
	logger   logger.ZapLogger
	inFlight atomic.Bool
}

func NewClient(cfg Config, table pricing.Table, tr *i18n.Translator, log logger.ZapLogger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http:     &http.Client{Timeout: timeout},
		endpoint: cfg.Endpoint,
		lang:     cfg.Language,
		pricing:  table,
		tr:       tr,
		logger:   log,
	}
}

// SubmitForm submits the holder's current state and resets it on success.
func (c *Client) SubmitForm(ctx context.Context, h *form.Holder) Result {
	s := h.Snapshot()
	res := c.Submit(ctx, s.Category, s.Order, s.FavoritePtr())
	if res.Success {
		h.Reset()
	}
	return res
}

// Submit validates locally and, only when valid, POSTs the order once. Only one
// submission per client runs at a time.
func (c *Client) Submit(ctx context.Context, category model.Category, o model.Order, fav *model.FavoriteProfile) Result {
	if !c.inFlight.CompareAndSwap(false, true) {
		return c.fail(ErrInFlight, "submit.in_flight", nil)
	}
	defer c.inFlight.Store(false)

	if err := validation.ValidateOrder(category, o, fav); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return c.fail(err, verr.MessageID, verr.Data)
		}
		return c.fail(err, "submit.error", nil)
	}

	if category != model.CategoryPerfumer {
		fav = nil
	}
	quote := c.pricing.QuoteOrder(o)
	req := dto.NewPlaceOrderRequest(category, o, fav, shipping.Derive(o), quote.Total)

	body, err := json.Marshal(req)
	if err != nil {
		return c.fail(err, "submit.error", nil)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return c.fail(err, "submit.error", nil)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept-Language", c.lang)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Error("order submission failed", zap.Error(err))
		if unreachable(err) {
			return c.fail(err, "submit.unreachable", nil)
		}
		return c.fail(err, "submit.error", nil)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(err, "submit.error", nil)
	}

	var reply dto.PlaceOrderReply
	decodeErr := json.Unmarshal(raw, &reply)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("order endpoint returned %d", resp.StatusCode)
		c.logger.Error("order submission rejected", zap.Int("status", resp.StatusCode), zap.ByteString("body", raw))
		if decodeErr == nil && reply.Message != "" {
			return c.fail(err, "submit.failed", map[string]interface{}{"Reason": reply.Message})
		}
		return c.fail(err, "submit.error", nil)
	}
	if decodeErr != nil {
		return c.fail(decodeErr, "submit.error", nil)
	}

	if !reply.Success {
		c.logger.Warn("order not accepted", zap.String("message", reply.Message))
		if reply.Message == "" {
			return c.fail(errors.New("order not accepted"), "submit.error", nil)
		}
		return Result{Message: reply.Message, Err: errors.New(reply.Message)}
	}

	if reply.OrderNumber == "" {
		c.logger.Warn("order reply has no order number", zap.ByteString("body", raw))
		return c.fail(errors.New("order reply has no order number"), "submit.error", nil)
	}

	c.logger.Info("order submitted", zap.String("order_number", reply.OrderNumber))
	return Result{
		Success:     true,
		Message:     c.tr.T(c.lang, "submit.success", map[string]interface{}{"OrderNumber": reply.OrderNumber}),
		OrderNumber: reply.OrderNumber,
	}
}

// unreachable reports whether err means the endpoint could not be reached at all.
func unreachable(err error) bool {
	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Ping checks that the order endpoint answers its health GET.
func (c *Client) Ping(ctx context.Context) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return c.fail(err, "ping.failed", map[string]interface{}{"Reason": err.Error()})
	}
	req.Header.Set("Accept-Language", c.lang)

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(err, "ping.failed", map[string]interface{}{"Reason": err.Error()})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("status %d", resp.StatusCode)
		return c.fail(err, "ping.failed", map[string]interface{}{"Reason": err.Error()})
	}

	var reply dto.HealthReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return c.fail(err, "ping.failed", map[string]interface{}{"Reason": err.Error()})
	}
	return Result{
		Success: true,
		Message: c.tr.T(c.lang, "ping.ok", map[string]interface{}{"Message": reply.Message}),
	}
}

func (c *Client) fail(err error, id string, data map[string]interface{}) Result {
	return Result{
		Message: c.tr.T(c.lang, id, data),
		Err:     err,
	}
}
