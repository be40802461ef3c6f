package presentation

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/hebertsb/pizzeria-nova-backend/internal/application"
	"github.com/hebertsb/pizzeria-nova-backend/internal/catalog"
	"github.com/hebertsb/pizzeria-nova-backend/internal/domain"
	"github.com/hebertsb/pizzeria-nova-backend/internal/geocode"
	"github.com/hebertsb/pizzeria-nova-backend/internal/ideas"
	"github.com/hebertsb/pizzeria-nova-backend/internal/logger"
	"github.com/hebertsb/pizzeria-nova-backend/internal/presentation/helpers"
	"github.com/hebertsb/pizzeria-nova-backend/internal/repository"
)

const defaultListLimit = 100

type OrdersHandler struct {
	svc   *application.OrdersService
	geo   *geocode.Client
	ideas *ideas.Client
}

func NewOrdersHandler(svc *application.OrdersService, geo *geocode.Client, ideaClient *ideas.Client) *OrdersHandler {
	return &OrdersHandler{svc: svc, geo: geo, ideas: ideaClient}
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Get("/", h.Index)
	r.Get("/get_products", h.GetProducts)
	r.Post("/submit_order", h.SubmitOrder)
	r.Post("/update_status/{orderID}", h.UpdateStatus)
	r.Get("/get_order/{orderID}", h.GetOrder)
	r.Get("/get_orders", h.GetOrders)
	r.Get("/factura/{orderID}", h.GetInvoice)
	r.Post("/generate_pizza_idea", h.GeneratePizzaIdea)
	r.Get("/reverse_geocode", h.ReverseGeocode)
}

func (h *OrdersHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("¡El servidor Backend de Pizzería está funcionando!"))
}

func (h *OrdersHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, catalog.Products())
}

// SubmitOrder persists the webapp order, notifies customer and
// restaurant, and launches the driver simulation. Notification or
// simulation trouble never changes the response: once the order is
// stored, it is placed.
func (h *OrdersHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChatID string        `json:"chat_id"`
		Order  *domain.Order `json:"order"`
	}
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "Request debe contener un JSON válido.")
		return
	}
	if strings.TrimSpace(req.ChatID) == "" || req.Order == nil {
		helpers.HttpError(w, http.StatusBadRequest, "Faltan datos (chat_id u order).")
		return
	}

	orderID, err := h.svc.SubmitOrder(r.Context(), req.ChatID, req.Order)
	if err != nil {
		if errors.Is(err, application.ErrInvalidOrder) {
			helpers.HttpError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Warn("submit order failed", "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "Error al guardar en la base de datos.")
		return
	}

	helpers.WriteJSON(w, http.StatusOK, map[string]any{
		"status":   "success",
		"order_id": orderID,
	})
}

func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	var req struct {
		Status         string         `json:"status"`
		DriverLocation *domain.LatLng `json:"driver_location"`
	}
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "Request debe contener un JSON válido.")
		return
	}
	if req.Status == "" {
		helpers.HttpError(w, http.StatusBadRequest, "El campo 'status' es requerido.")
		return
	}

	_, err := h.svc.Transition(r.Context(), orderID, domain.Status(req.Status), req.DriverLocation)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			helpers.HttpError(w, http.StatusNotFound, "Pedido "+orderID+" no encontrado.")
			return
		}
		logger.Warn("update status failed", "order_id", orderID, "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "No se pudo actualizar el estado en la base de datos.")
		return
	}

	helpers.WriteJSON(w, http.StatusOK, map[string]any{
		"status":     "success",
		"order_id":   orderID,
		"new_status": req.Status,
	})
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	o, err := h.svc.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			helpers.HttpError(w, http.StatusNotFound, "Pedido "+orderID+" no encontrado.")
			return
		}
		logger.Warn("get order failed", "order_id", orderID, "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "Error interno del servidor.")
		return
	}

	helpers.WriteJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if q := r.URL.Query().Get("limit"); q != "" {
		if v, err := strconv.Atoi(q); err == nil && v > 0 && v <= 1000 {
			limit = v
		}
	}

	orders, err := h.svc.ListOrders(r.Context(), limit)
	if err != nil {
		logger.Warn("list orders failed", "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "Error interno del servidor al obtener los pedidos.")
		return
	}
	if orders == nil {
		orders = []*domain.Order{}
	}

	helpers.WriteJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	o, err := h.svc.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			http.Error(w, "Error 404: Pedido #"+orderID+" no encontrado.", http.StatusNotFound)
			return
		}
		logger.Warn("invoice lookup failed", "order_id", orderID, "err", err)
		http.Error(w, "Error interno del servidor al procesar la factura.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderInvoice(w, o); err != nil {
		logger.Warn("invoice render failed", "order_id", orderID, "err", err)
	}
}

func (h *OrdersHandler) GeneratePizzaIdea(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ingredients []string `json:"ingredients"`
	}
	if err := helpers.DecodeJSON(r.Body, &req); err != nil || len(req.Ingredients) == 0 {
		helpers.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"error": "La lista de 'ingredients' es requerida.",
		})
		return
	}

	idea, err := h.ideas.GeneratePizzaIdea(r.Context(), req.Ingredients)
	if err != nil {
		switch {
		case errors.Is(err, ideas.ErrNotConfigured):
			helpers.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"error": "El servicio de IA no está configurado.",
			})
		case errors.Is(err, ideas.ErrUpstreamUnavailable):
			logger.Warn("idea generation upstream failed", "err", err)
			helpers.WriteJSON(w, http.StatusBadGateway, map[string]string{
				"error": "No se pudo contactar el servicio de IA. Inténtalo de nuevo.",
			})
		default:
			logger.Warn("idea generation failed", "err", err)
			helpers.WriteJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "No se pudo procesar la respuesta del servicio de IA. Inténtalo de nuevo.",
			})
		}
		return
	}

	helpers.WriteJSON(w, http.StatusOK, idea)
}

func (h *OrdersHandler) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	lat := r.URL.Query().Get("lat")
	lon := r.URL.Query().Get("lon")
	if lat == "" || lon == "" {
		helpers.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Parámetros 'lat' y 'lon' son requeridos.",
		})
		return
	}
	if _, err := strconv.ParseFloat(lat, 64); err != nil {
		helpers.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Latitud y longitud deben ser números válidos.",
		})
		return
	}
	if _, err := strconv.ParseFloat(lon, 64); err != nil {
		helpers.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Latitud y longitud deben ser números válidos.",
		})
		return
	}

	res, err := h.geo.Reverse(r.Context(), lat, lon)
	if err != nil {
		switch {
		case errors.Is(err, geocode.ErrUnreachable):
			logger.Warn("reverse geocode unreachable", "err", err)
			helpers.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"error": "Error de conexión con el servicio de mapas.",
			})
		default:
			logger.Warn("reverse geocode failed", "err", err)
			helpers.WriteJSON(w, http.StatusBadGateway, map[string]string{
				"error": "No se pudo obtener la dirección del servicio externo.",
			})
		}
		return
	}

	helpers.WriteJSON(w, http.StatusOK, map[string]any{
		"display_name": res.DisplayName,
		"raw":          res.Raw,
	})
}
