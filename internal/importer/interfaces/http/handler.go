package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"banque-numerique/internal/importer/interfaces"

	importer "banque-numerique/internal/importer/domain"
	inventoryapp "banque-numerique/internal/inventory/application"
	"banque-numerique/internal/observability/metrics"
	partnersapp "banque-numerique/internal/partners/application"
)

// PreviewHandler serves POST /api/v1/import/preview. Rows arrive either
// as a JSON body or as a multipart upload carrying an xlsx workbook;
// either way nothing is persisted, the caller only gets the classified
// and filtered view back.
type PreviewHandler struct{}

// NewPreviewHandler constructs a preview handler.
func NewPreviewHandler() *PreviewHandler {
	return &PreviewHandler{}
}

type previewRequest struct {
	Rows   []importer.RawRecord `json:"rows"`
	Filter importer.Filter      `json:"filter"`
}

type previewResponse struct {
	Total    int                         `json:"total"`
	Matched  int                         `json:"matched"`
	Records  []importer.ClassifiedRecord `json:"records"`
	Filter   importer.Filter             `json:"filter"`
	ByStatus map[string]int              `json:"byStatus"`
}

// ServeHTTP classifies the submitted rows and applies the filter.
func (h *PreviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req previewRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing file upload", http.StatusBadRequest)
			return
		}
		defer file.Close()
		rows, err := interfaces.ParseDevicesXLSX(file)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.Rows = rows
		req.Filter = importer.Filter{
			Type:       r.FormValue("type"),
			Status:     r.FormValue("status"),
			SearchTerm: r.FormValue("q"),
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
	}

	classified := importer.Classify(req.Rows)
	byStatus := make(map[string]int)
	for _, rec := range classified {
		byStatus[string(rec.Status)]++
		metrics.CountImportRow(string(rec.Status))
	}
	matched := importer.Apply(classified, req.Filter)

	respondJSON(w, http.StatusOK, previewResponse{
		Total:    len(classified),
		Matched:  len(matched),
		Records:  matched,
		Filter:   req.Filter,
		ByStatus: byStatus,
	})
}

// ExportHandler serves the workbook downloads under /api/v1/exports.
type ExportHandler struct {
	devices  *inventoryapp.Service
	partners *partnersapp.Service
}

// NewExportHandler constructs an export handler.
func NewExportHandler(devices *inventoryapp.Service, partners *partnersapp.Service) (*ExportHandler, error) {
	if devices == nil || partners == nil {
		return nil, errors.New("export handler: nil service")
	}
	return &ExportHandler{devices: devices, partners: partners}, nil
}

// ServeHTTP streams the requested collection as an xlsx attachment.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	switch r.URL.Path {
	case "/api/v1/exports/devices.xlsx":
		devices, err := h.devices.List(r.Context())
		if err != nil {
			metrics.CountExport("devices", metrics.ResultError)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		payload, err := interfaces.BuildDevicesXLSX(devices)
		if err != nil {
			metrics.CountExport("devices", metrics.ResultError)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		metrics.CountExport("devices", metrics.ResultSuccess)
		writeWorkbook(w, "appareils.xlsx", payload)
	case "/api/v1/exports/interlocuteurs.xlsx":
		interlocuteurs, err := h.partners.ListInterlocuteurs(r.Context())
		if err != nil {
			metrics.CountExport("interlocuteurs", metrics.ResultError)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		payload, err := interfaces.BuildInterlocuteursXLSX(interlocuteurs)
		if err != nil {
			metrics.CountExport("interlocuteurs", metrics.ResultError)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		metrics.CountExport("interlocuteurs", metrics.ResultSuccess)
		writeWorkbook(w, "interlocuteurs.xlsx", payload)
	default:
		http.NotFound(w, r)
	}
}

func writeWorkbook(w http.ResponseWriter, filename string, payload []byte) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(payload)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
