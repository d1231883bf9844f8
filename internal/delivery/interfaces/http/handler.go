package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"banque-numerique/internal/audit"
	"banque-numerique/internal/auth"
	"banque-numerique/internal/delivery/application"
	delivery "banque-numerique/internal/delivery/domain"
	deliveryexport "banque-numerique/internal/delivery/interfaces"
	"banque-numerique/internal/observability/metrics"
)

// Handler provides delivery order endpoints under /api/v1/orders.
type Handler struct {
	service     *application.Service
	auditLogger audit.Logger
}

// NewHandler constructs a handler.
func NewHandler(service *application.Service, auditLogger audit.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("orders handler: nil service")
	}
	return &Handler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP routes order requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/orders")
	rest = strings.Trim(rest, "/")

	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			orders, err := h.service.List(r.Context())
			if err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, orders)
		case http.MethodPost:
			h.handleCreate(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	parts := strings.Split(rest, "/")
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	if len(parts) == 2 {
		switch parts[1] {
		case "delivery-note":
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			h.handleGenerateNote(w, r, id)
		case "delivery-note.pdf":
			if r.Method != http.MethodGet {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			h.handleNotePDF(w, r, id)
		case "deliver":
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			h.handleDeliver(w, r, id)
		default:
			http.NotFound(w, r)
		}
		return
	}
	if len(parts) != 1 {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		order, err := h.service.Get(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, order)
	case http.MethodPut:
		h.handleUpdate(w, r, id)
	case http.MethodDelete:
		if err := h.service.Delete(r.Context(), id); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		h.logAudit(r, "order.delete", id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var order delivery.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	created, err := h.service.Create(r.Context(), order)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
	h.logAudit(r, "order.create", created.ID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request, id int64) {
	var order delivery.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	updated, err := h.service.Update(r.Context(), id, order)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
	h.logAudit(r, "order.update", id)
}

func (h *Handler) handleGenerateNote(w http.ResponseWriter, r *http.Request, id int64) {
	order, err := h.service.GenerateDeliveryNote(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	metrics.CountDeliveryNote()
	respondJSON(w, http.StatusOK, order)
	h.logAudit(r, "order.delivery_note", id)
}

func (h *Handler) handleNotePDF(w http.ResponseWriter, r *http.Request, id int64) {
	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	pdf, err := deliveryexport.BuildDeliveryNotePDF(order)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+order.NumeroBonLivraison+`.pdf"`)
	_, _ = w.Write(pdf)
}

func (h *Handler) handleDeliver(w http.ResponseWriter, r *http.Request, id int64) {
	order, err := h.service.ConfirmDelivery(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
	h.logAudit(r, "order.deliver", id)
}

func (h *Handler) logAudit(r *http.Request, action string, id int64) {
	if h.auditLogger == nil {
		return
	}
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: "delivery_order",
		ResourceID:   strconv.FormatInt(id, 10),
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, delivery.ErrOrderNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, delivery.ErrAlreadyPrepared),
		errors.Is(err, delivery.ErrAlreadyDelivered),
		errors.Is(err, delivery.ErrNotPrepared):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, delivery.ErrMissingOrderNumber),
		errors.Is(err, delivery.ErrInvalidOrderType),
		errors.Is(err, delivery.ErrMissingStructure),
		errors.Is(err, delivery.ErrMissingRequester):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
