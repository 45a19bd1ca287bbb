package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fekuna/perfume-order-service/internal/order"
	"github.com/fekuna/perfume-order-service/internal/order/dto"
	"github.com/fekuna/perfume-order-service/internal/validation"
	"github.com/fekuna/perfume-order-service/pkg/i18n"
	"github.com/fekuna/perfume-order-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) PlaceOrder(ctx context.Context, req *dto.PlaceOrderRequest) (*dto.PlaceOrderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PlaceOrderResult), args.Error(1)
}

func (m *MockUseCase) RecordFailure(ctx context.Context, f *dto.FailureRecord) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

const validBody = `{"orderType":"ai","name":"Kim","phone":"010","xId":"","address":"Seoul","detailAddress":"",
"postalCode":"","quantity10ml":1,"perfumes10ml":[{"id":"a","selectedScent":{"id":"RS-2807221","name":"Rose","category":"floral"},
"perfumeColor":"pink","perfumeIntensity":"light","labelingNickname":""}],"quantity50ml":0,"perfumes50ml":[],
"additionalRequests":"","totalAmount":27500,"shippingFormat":[]}`

func newServer(t *testing.T, uc order.UseCase) http.Handler {
	t.Helper()
	tr, err := i18n.New("ko")
	require.NoError(t, err)
	h := NewOrderHandler(uc, tr, logger.NewNop())
	return NewRouter(h, []string{"*"})
}

func do(t *testing.T, srv http.Handler, method, body string) (*httptest.ResponseRecorder, dto.PlaceOrderReply) {
	t.Helper()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var reply dto.PlaceOrderReply
	if method == http.MethodPost {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	}
	return rec, reply
}

func TestHealth(t *testing.T) {
	srv := newServer(t, new(MockUseCase))
	rec, _ := do(t, srv, http.MethodGet, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var reply dto.HealthReply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, "OK", reply.Status)
	assert.Equal(t, "The perfume order system is running.", reply.Message)
}

func TestPlaceOrder_Accepted(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(r *dto.PlaceOrderRequest) bool {
		return r.OrderType == "ai" && r.Quantity10ml == 1 && r.Perfumes10ml[0].Scent.Name == "Rose"
	})).Return(&dto.PlaceOrderResult{OrderNumber: "AI250102030405"}, nil)

	rec, reply := do(t, newServer(t, uc), http.MethodPost, validBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reply.Success)
	assert.Equal(t, "AI250102030405", reply.OrderNumber)
	assert.Equal(t, "Your order has been received.", reply.Message)
	uc.AssertExpectations(t)
}

func TestPlaceOrder_ValidationRejected(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("PlaceOrder", mock.Anything, mock.Anything).
		Return(nil, &validation.Error{MessageID: "validation.no_items"})

	rec, reply := do(t, newServer(t, uc), http.MethodPost, validBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, reply.Success)
	assert.Equal(t, "Please order at least one perfume!", reply.Message)
	uc.AssertNotCalled(t, "RecordFailure", mock.Anything, mock.Anything)
}

func TestPlaceOrder_BadOrderTypeRecorded(t *testing.T) {
	cases := map[string]*validation.Error{
		"missing": {MessageID: "order.missing_category"},
		"unknown": {MessageID: "order.unknown_category", Data: map[string]interface{}{"Category": "wholesale"}},
	}
	for name, verr := range cases {
		t.Run(name, func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("PlaceOrder", mock.Anything, mock.Anything).Return(nil, verr)
			uc.On("RecordFailure", mock.Anything, mock.MatchedBy(func(f *dto.FailureRecord) bool {
				return f.Message == verr.Error() && f.Payload == validBody
			})).Return(nil)

			rec, reply := do(t, newServer(t, uc), http.MethodPost, validBody)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.False(t, reply.Success)
			uc.AssertExpectations(t)
		})
	}
}

func TestPlaceOrder_Duplicate(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("PlaceOrder", mock.Anything, mock.Anything).Return(nil, order.ErrDuplicateSubmission)

	rec, reply := do(t, newServer(t, uc), http.MethodPost, validBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, reply.Success)
	assert.Equal(t, "The same order is already being processed.", reply.Message)
}

func TestPlaceOrder_InvalidJSON(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("RecordFailure", mock.Anything, mock.MatchedBy(func(f *dto.FailureRecord) bool {
		return f.Payload == "{not json"
	})).Return(nil)

	rec, reply := do(t, newServer(t, uc), http.MethodPost, "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, reply.Success)
	assert.Equal(t, "The order data could not be read.", reply.Message)
	assert.NotEmpty(t, reply.Error)
	uc.AssertExpectations(t)
	uc.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
}

func TestPlaceOrder_UnknownFieldRejected(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("RecordFailure", mock.Anything, mock.Anything).Return(nil)

	rec, _ := do(t, newServer(t, uc), http.MethodPost, `{"orderType":"ai","perfumes":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlaceOrder_InternalError(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("PlaceOrder", mock.Anything, mock.Anything).Return(nil, errors.New("store unavailable"))
	uc.On("RecordFailure", mock.Anything, mock.MatchedBy(func(f *dto.FailureRecord) bool {
		return f.Message == "store unavailable" && f.Payload == validBody
	})).Return(errors.New("also down"))

	rec, reply := do(t, newServer(t, uc), http.MethodPost, validBody)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, reply.Success)
	assert.Equal(t, "store unavailable", reply.Error)
	assert.Contains(t, reply.Message, "store unavailable")
	uc.AssertExpectations(t)
}

func TestPlaceOrder_PanicRecovered(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("PlaceOrder", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("nil map write")
	})
	uc.On("RecordFailure", mock.Anything, mock.MatchedBy(func(f *dto.FailureRecord) bool {
		return f.Message == "nil map write" && f.Stack != "" && f.Payload == validBody
	})).Return(nil)

	rec, reply := do(t, newServer(t, uc), http.MethodPost, validBody)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, reply.Success)
	assert.Equal(t, "nil map write", reply.Error)
	uc.AssertExpectations(t)
}

func TestPreflight(t *testing.T) {
	srv := newServer(t, new(MockUseCase))

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
