// Package http exposes the cross-context endpoints: the statistics
// overview and the device-ready mail dispatch. Both read through the
// application services rather than the repositories so that every
// derived number reflects the same rules the CRUD paths enforce.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"banque-numerique/internal/audit"
	"banque-numerique/internal/auth"
	inventoryapp "banque-numerique/internal/inventory/application"
	inventory "banque-numerique/internal/inventory/domain"
	"banque-numerique/internal/mailer"
	"banque-numerique/internal/observability/metrics"
	partnersapp "banque-numerique/internal/partners/application"
	"banque-numerique/internal/stats"
)

// StatsResponse bundles the summary with the derived shares and the
// per-structure donation rollups.
type StatsResponse struct {
	stats.Summary
	StatePercentages map[string]float64             `json:"statePercentages"`
	BrandPercentages map[string]float64             `json:"brandPercentages"`
	Donations        map[int64]stats.DonationRollup `json:"donationsByInterlocuteur"`
}

// StatsHandler serves GET /api/v1/stats.
type StatsHandler struct {
	devices  *inventoryapp.Service
	partners *partnersapp.Service
}

// NewStatsHandler constructs a stats handler.
func NewStatsHandler(devices *inventoryapp.Service, partners *partnersapp.Service) (*StatsHandler, error) {
	if devices == nil || partners == nil {
		return nil, errors.New("stats handler: nil service")
	}
	return &StatsHandler{devices: devices, partners: partners}, nil
}

// ServeHTTP recomputes the overview from the full collections.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	devices, err := h.devices.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	interlocuteurs, err := h.partners.ListInterlocuteurs(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	donations, err := h.partners.ListDonations(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	summary := stats.Compute(devices, interlocuteurs)
	metrics.SetInventoryTotals(summary.TotalPCs, summary.TotalSmartphones)

	respondJSON(w, http.StatusOK, StatsResponse{
		Summary:          summary,
		StatePercentages: summary.StatePercentages(),
		BrandPercentages: summary.BrandPercentages(),
		Donations:        stats.DonationsByInterlocuteur(donations),
	})
}

// EmailRequest is the POST /api/v1/emails/device-ready payload.
type EmailRequest struct {
	DeviceID  int64  `json:"deviceId"`
	Recipient string `json:"recipient"`
}

// EmailHandler dispatches device-ready notifications.
type EmailHandler struct {
	devices     *inventoryapp.Service
	channel     mailer.Channel
	auditLogger audit.Logger
}

// NewEmailHandler constructs an email handler.
func NewEmailHandler(devices *inventoryapp.Service, channel mailer.Channel, auditLogger audit.Logger) (*EmailHandler, error) {
	if devices == nil {
		return nil, errors.New("email handler: nil device service")
	}
	if channel == nil {
		return nil, errors.New("email handler: nil channel")
	}
	return &EmailHandler{devices: devices, channel: channel, auditLogger: auditLogger}, nil
}

// ServeHTTP renders and sends one device-ready mail. Provider failures
// surface as 502 so the caller can retry without guessing.
func (h *EmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	device, err := h.devices.Get(r.Context(), req.DeviceID)
	if err != nil {
		if errors.Is(err, inventory.ErrDeviceNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	msg, err := mailer.BuildDeviceReadyMessage(*device, req.Recipient)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.channel.Send(r.Context(), msg); err != nil {
		metrics.CountEmail(metrics.ResultError)
		http.Error(w, fmt.Sprintf("mail dispatch failed: %v", err), http.StatusBadGateway)
		h.logAudit(r.Context(), r, req, metrics.ResultError)
		return
	}
	metrics.CountEmail(metrics.ResultSuccess)
	h.logAudit(r.Context(), r, req, metrics.ResultSuccess)

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "sent",
		"to":      msg.To,
		"subject": msg.Subject,
	})
}

func (h *EmailHandler) logAudit(ctx context.Context, r *http.Request, req EmailRequest, result string) {
	if h.auditLogger == nil {
		return
	}
	_ = h.auditLogger.Log(ctx, audit.Entry{
		Actor:        auth.SubjectFromContext(ctx),
		Role:         string(auth.RoleFromContext(ctx)),
		Action:       "email.device_ready." + result,
		ResourceType: "device",
		ResourceID:   strconv.FormatInt(req.DeviceID, 10),
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
