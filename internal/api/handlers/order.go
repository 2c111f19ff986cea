package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aminati-ec/catalog-studio/internal/api/middleware"
	"github.com/aminati-ec/catalog-studio/internal/models"
	"github.com/aminati-ec/catalog-studio/internal/utils"
	"github.com/aminati-ec/catalog-studio/internal/utils/response"
	"github.com/aminati-ec/catalog-studio/pkg/sendgrid"
	"github.com/go-playground/validator/v10"
)

// OrderHandler forwards checkout forms to the store operator by email.
// Delivery is best effort: the customer already saw their confirmation, so
// a mail failure is logged and reported but never retried here.
type OrderHandler struct {
	email     sendgrid.EmailService
	validator *validator.Validate
}

func NewOrderHandler(email sendgrid.EmailService) *OrderHandler {
	return &OrderHandler{
		email:     email,
		validator: validator.New(),
	}
}

func (h *OrderHandler) Notify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.OrderNotifyRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.email.SendOrderNotification(r.Context(), &req); err != nil {
			logger.Error("Order notification failed",
				slog.String("productNumber", req.ProductNumber),
				slog.String("error", err.Error()))
			response.Success(w, http.StatusAccepted, map[string]string{"status": "accepted", "email": "failed"})
			return
		}

		logger.Info("Order notification sent", slog.String("productNumber", req.ProductNumber))
		response.Success(w, http.StatusOK, map[string]string{"status": "sent"})

	}
}
