package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/atinyakov/FotoShop/internal/middleware"
	"github.com/atinyakov/FotoShop/internal/models"
)

// OrderService places orders for an authenticated customer.
type OrderService interface {
	PlaceOrder(ctx context.Context, customerID int64, lines []models.OrderLineInput) (models.Order, error)
}

type OrderHandler struct {
	OrderService OrderService
}

type placeOrderRequest struct {
	Lines []models.OrderLineInput `json:"lines"`
}

// Place handles POST /orders behind TokenAuth and answers 201 with the
// created order in an envelope.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	order, err := h.OrderService.PlaceOrder(r.Context(), user.ID, req.Lines)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.Envelope[models.Order]{
		Success: true,
		Message: "order placed",
		Data:    order,
	})
}
