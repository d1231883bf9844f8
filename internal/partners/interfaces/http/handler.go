package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"banque-numerique/internal/audit"
	"banque-numerique/internal/auth"
	inventory "banque-numerique/internal/inventory/domain"
	"banque-numerique/internal/partners/application"
	partners "banque-numerique/internal/partners/domain"
	"banque-numerique/internal/validation"
)

// Handler provides interlocuteur and donation endpoints under
// /api/v1/interlocuteurs and /api/v1/donations.
type Handler struct {
	service     *application.Service
	auditLogger audit.Logger
}

// NewHandler constructs a handler.
func NewHandler(service *application.Service, auditLogger audit.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("partners handler: nil service")
	}
	return &Handler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP routes partner requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasPrefix(r.URL.Path, "/api/v1/interlocuteurs"):
		h.serveInterlocuteurs(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/v1/donations"):
		h.serveDonations(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) serveInterlocuteurs(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/interlocuteurs")
	rest = strings.Trim(rest, "/")

	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			list, err := h.service.SearchInterlocuteurs(r.Context(), r.URL.Query().Get("q"))
			if err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, list)
		case http.MethodPost:
			var interlocuteur partners.Interlocuteur
			if err := json.NewDecoder(r.Body).Decode(&interlocuteur); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
			created, err := h.service.CreateInterlocuteur(r.Context(), interlocuteur)
			if err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusCreated, created)
			h.logAudit(r, "interlocuteur.create", "interlocuteur", created.ID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	parts := strings.Split(rest, "/")
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		http.Error(w, "invalid interlocuteur id", http.StatusBadRequest)
		return
	}

	// GET /api/v1/interlocuteurs/{id}/donations
	if len(parts) == 2 && parts[1] == "donations" {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		donations, err := h.service.ListDonationsByInterlocuteur(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, donations)
		return
	}
	if len(parts) != 1 {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		interlocuteur, err := h.service.GetInterlocuteur(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, interlocuteur)
	case http.MethodPut:
		var interlocuteur partners.Interlocuteur
		if err := json.NewDecoder(r.Body).Decode(&interlocuteur); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		updated, err := h.service.UpdateInterlocuteur(r.Context(), id, interlocuteur)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, updated)
		h.logAudit(r, "interlocuteur.update", "interlocuteur", id)
	case http.MethodDelete:
		if err := h.service.DeleteInterlocuteur(r.Context(), id); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		h.logAudit(r, "interlocuteur.delete", "interlocuteur", id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) serveDonations(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/donations")
	rest = strings.Trim(rest, "/")

	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			donations, err := h.service.ListDonations(r.Context())
			if err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, donations)
		case http.MethodPost:
			var donation partners.Donation
			if err := json.NewDecoder(r.Body).Decode(&donation); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
			created, err := h.service.CreateDonation(r.Context(), donation)
			if err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusCreated, created)
			h.logAudit(r, "donation.create", "donation", created.ID)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		http.Error(w, "invalid donation id", http.StatusBadRequest)
		return
	}
	switch r.Method {
	case http.MethodPut:
		var donation partners.Donation
		if err := json.NewDecoder(r.Body).Decode(&donation); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		updated, err := h.service.UpdateDonation(r.Context(), id, donation)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, updated)
		h.logAudit(r, "donation.update", "donation", id)
	case http.MethodDelete:
		if err := h.service.DeleteDonation(r.Context(), id); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		h.logAudit(r, "donation.delete", "donation", id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) logAudit(r *http.Request, action, resourceType string, id int64) {
	if h.auditLogger == nil {
		return
	}
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: resourceType,
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
	var validationErr *validation.Error
	switch {
	case errors.As(err, &validationErr):
		respondJSON(w, http.StatusBadRequest, validationErr.Report)
	case errors.Is(err, partners.ErrInterlocuteurNotFound), errors.Is(err, partners.ErrDonationNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, partners.ErrUnknownInterlocuteur),
		errors.Is(err, partners.ErrMissingInterlocuteur),
		errors.Is(err, partners.ErrInvalidQuantity),
		errors.Is(err, inventory.ErrInvalidDeviceType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
