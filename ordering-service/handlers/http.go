package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/tradeflow/ordering-system/ordering-service/application"
	"github.com/tradeflow/ordering-system/shared/messaging"
)

// OrderHandlers contains order HTTP handlers
type OrderHandlers struct {
	submitOrder *application.SubmitOrder
	getOrder    *application.GetOrder
	listOrders  *application.ListOrders
}

// NewOrderHandlers creates new order handlers
func NewOrderHandlers(
	submitOrder *application.SubmitOrder,
	getOrder *application.GetOrder,
	listOrders *application.ListOrders,
) *OrderHandlers {
	return &OrderHandlers{
		submitOrder: submitOrder,
		getOrder:    getOrder,
		listOrders:  listOrders,
	}
}

// SubmitOrder handles order submission requests
func (h *OrderHandlers) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var cmd messaging.SubmitOrder
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.submitOrder.Execute(r.Context(), &cmd)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

// GetOrder handles order retrieval requests
func (h *OrderHandlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		http.Error(w, "Order ID is required", http.StatusBadRequest)
		return
	}

	query := &application.GetOrderQuery{
		OrderID: orderID,
	}

	response, err := h.getOrder.Execute(r.Context(), query)
	if err != nil {
		if errors.Is(err, application.ErrOrderNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ListOrders handles listing a user's orders
func (h *OrderHandlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id query parameter is required", http.StatusBadRequest)
		return
	}

	query := &application.ListOrdersQuery{
		UserID: userID,
	}

	response, err := h.listOrders.Execute(r.Context(), query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// RegisterRoutes registers order routes
func (h *OrderHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.SubmitOrder)
		r.Get("/", h.ListOrders)
		r.Get("/{id}", h.GetOrder)
	})
}
