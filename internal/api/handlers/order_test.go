package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aminati-ec/catalog-studio/internal/api/handlers"
	"github.com/aminati-ec/catalog-studio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) SendOrderNotification(ctx context.Context, order *models.OrderNotifyRequest) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func validOrder() models.OrderNotifyRequest {
	return models.OrderNotifyRequest{
		ProductNumber: "1001",
		ProductName:   "オーバーサイズTシャツ",
		Color:         "ブラック",
		Size:          "M",
		Quantity:      1,
		Total:         8330,
		CustomerName:  "山田太郎",
		Phone:         "090-0000-0000",
		Zip:           "150-0001",
		Address:       "東京都渋谷区1-1-1",
	}
}

func TestNotify(t *testing.T) {
	t.Run("Success - Notification email sent", func(t *testing.T) {
		mockEmail := new(mockEmailService)
		handler := handlers.NewOrderHandler(mockEmail)

		mockEmail.On("SendOrderNotification", mock.Anything, mock.MatchedBy(func(order *models.OrderNotifyRequest) bool {
			return order.ProductNumber == "1001"
		})).Return(nil).Once()

		req := jsonRequest(t, "POST", "/api/v1/orders/notify", validOrder())
		recorder := httptest.NewRecorder()

		handler.Notify()(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.True(t, decodeResponse(t, recorder).Success)
		mockEmail.AssertExpectations(t)
	})

	t.Run("Email failure is accepted, not an error", func(t *testing.T) {
		mockEmail := new(mockEmailService)
		handler := handlers.NewOrderHandler(mockEmail)

		mockEmail.On("SendOrderNotification", mock.Anything, mock.Anything).
			Return(errors.New("sendgrid unavailable")).Once()

		req := jsonRequest(t, "POST", "/api/v1/orders/notify", validOrder())
		recorder := httptest.NewRecorder()

		handler.Notify()(recorder, req)

		assert.Equal(t, http.StatusAccepted, recorder.Code)
		mockEmail.AssertExpectations(t)
	})

	t.Run("Failure - Missing shipping fields", func(t *testing.T) {
		mockEmail := new(mockEmailService)
		handler := handlers.NewOrderHandler(mockEmail)

		order := validOrder()
		order.Address = ""

		req := jsonRequest(t, "POST", "/api/v1/orders/notify", order)
		recorder := httptest.NewRecorder()

		handler.Notify()(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockEmail.AssertNotCalled(t, "SendOrderNotification", mock.Anything, mock.Anything)
	})
}
