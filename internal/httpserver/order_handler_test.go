package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"erp-be/internal/order"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) Create(ctx context.Context, actorUserID, description string) (*order.Order, error) {
	args := m.Called(ctx, actorUserID, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderService) Get(ctx context.Context, orderID string) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderService) Search(ctx context.Context, f order.Filter) ([]*order.Order, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *mockOrderService) AddLine(ctx context.Context, orderID, itemID string, quantity int) (*order.Order, error) {
	args := m.Called(ctx, orderID, itemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderService) UpdateLine(ctx context.Context, orderID, itemID string, quantity int) (*order.Order, error) {
	args := m.Called(ctx, orderID, itemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderService) RemoveLine(ctx context.Context, orderID, itemID string) (*order.Order, error) {
	args := m.Called(ctx, orderID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderService) ChangeStatus(ctx context.Context, orderID, action string) (*order.Order, error) {
	args := m.Called(ctx, orderID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func newLineContext(t *testing.T, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

func TestOrderHandler_AddLine(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := new(mockOrderService)
		h := &OrderHandler{Orders: svc}

		svc.On("AddLine", mock.Anything, "o-1", "i-1", 3).
			Return(&order.Order{ID: "o-1", Total: decimal.RequireFromString("15.00")}, nil)

		c, rec := newLineContext(t, http.MethodPost, `{"itemID":"i-1","quantity":3}`)
		c.SetParamNames("id")
		c.SetParamValues("o-1")

		require.NoError(t, h.AddLine(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total":"15"`)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		svc := new(mockOrderService)
		h := &OrderHandler{Orders: svc}

		svc.On("AddLine", mock.Anything, "o-1", "i-1", 99).
			Return(nil, order.ErrInsufficientStock)

		c, rec := newLineContext(t, http.MethodPost, `{"itemID":"i-1","quantity":99}`)
		c.SetParamNames("id")
		c.SetParamValues("o-1")

		require.NoError(t, h.AddLine(c))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("DuplicateLine", func(t *testing.T) {
		svc := new(mockOrderService)
		h := &OrderHandler{Orders: svc}

		svc.On("AddLine", mock.Anything, "o-1", "i-1", 1).
			Return(nil, order.ErrDuplicateLine)

		c, rec := newLineContext(t, http.MethodPost, `{"itemID":"i-1","quantity":1}`)
		c.SetParamNames("id")
		c.SetParamValues("o-1")

		require.NoError(t, h.AddLine(c))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("OrderNotFound", func(t *testing.T) {
		svc := new(mockOrderService)
		h := &OrderHandler{Orders: svc}

		svc.On("AddLine", mock.Anything, "missing", "i-1", 1).
			Return(nil, order.ErrOrderNotFound)

		c, rec := newLineContext(t, http.MethodPost, `{"itemID":"i-1","quantity":1}`)
		c.SetParamNames("id")
		c.SetParamValues("missing")

		require.NoError(t, h.AddLine(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("ValidationError", func(t *testing.T) {
		svc := new(mockOrderService)
		h := &OrderHandler{Orders: svc}

		svc.On("AddLine", mock.Anything, "o-1", "", 0).
			Return(nil, order.ErrValidation)

		c, rec := newLineContext(t, http.MethodPost, `{}`)
		c.SetParamNames("id")
		c.SetParamValues("o-1")

		require.NoError(t, h.AddLine(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestOrderHandler_ChangeStatus(t *testing.T) {
	t.Run("Paid", func(t *testing.T) {
		svc := new(mockOrderService)
		h := &OrderHandler{Orders: svc}

		svc.On("ChangeStatus", mock.Anything, "o-1", "pay").
			Return(&order.Order{ID: "o-1", Status: order.StatusPaid}, nil)

		c, rec := newLineContext(t, http.MethodPost, `{"action":"pay"}`)
		c.SetParamNames("id")
		c.SetParamValues("o-1")

		require.NoError(t, h.ChangeStatus(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"paid"`)
	})

	t.Run("InvalidTransition", func(t *testing.T) {
		svc := new(mockOrderService)
		h := &OrderHandler{Orders: svc}

		svc.On("ChangeStatus", mock.Anything, "o-1", "pay").
			Return(nil, order.ErrInvalidTransition)

		c, rec := newLineContext(t, http.MethodPost, `{"action":"pay"}`)
		c.SetParamNames("id")
		c.SetParamValues("o-1")

		require.NoError(t, h.ChangeStatus(c))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestOrderHandler_Search_QueryParams(t *testing.T) {
	svc := new(mockOrderService)
	h := &OrderHandler{Orders: svc}

	desc := "restock"
	status := order.StatusPaid
	svc.On("Search", mock.Anything, order.Filter{Description: &desc, Status: &status}).
		Return([]*order.Order{}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?description=restock&status=paid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Search(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
