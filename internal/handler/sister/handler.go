package sister

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	sistermodel "github.com/phigamnu/sistergreet/internal/model/sister"
	"github.com/phigamnu/sistergreet/internal/service/audit"
	"github.com/phigamnu/sistergreet/internal/service/imageprobe"
	"github.com/phigamnu/sistergreet/internal/service/roster"
	"github.com/phigamnu/sistergreet/pkg/utils"
)

// Handler serves roster lookups and candidate validation.
type Handler struct {
	rosterSvc *roster.Service
	prober    *imageprobe.Prober
	auditSvc  *audit.Service
}

// New creates the sister handler.
func New(rosterSvc *roster.Service, prober *imageprobe.Prober, auditSvc *audit.Service) *Handler {
	return &Handler{
		rosterSvc: rosterSvc,
		prober:    prober,
		auditSvc:  auditSvc,
	}
}

// RegisterRoutes registers the roster routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/sisters", h.handleList)
	r.Get("/sisters/{name}", h.handleFind)
	r.Get("/sisters/{name}/exists", h.handleExists)
	r.Post("/sisters/validate", h.handleValidate)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.rosterSvc.List(r.Context()))
}

func (h *Handler) handleFind(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	record, ok := h.rosterSvc.Find(r.Context(), name)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "sister not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, record)
}

func (h *Handler) handleExists(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	utils.RespondJSON(w, http.StatusOK, map[string]bool{
		"exists": h.rosterSvc.Exists(r.Context(), name),
	})
}

type validateResponse struct {
	sistermodel.ValidationResult
	Unreachable []string `json:"unreachable,omitempty"`
}

// handleValidate runs the field checks and, when probeImages=true, also
// probes each syntactically valid image URL for reachability. Probe misses
// do not flip Valid; they are advisory.
func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var candidate sistermodel.Sister
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := sistermodel.Validate(candidate)
	response := validateResponse{ValidationResult: result}

	if probe, _ := strconv.ParseBool(r.URL.Query().Get("probeImages")); probe && result.Valid {
		for _, image := range candidate.Images {
			if image == "" {
				continue
			}
			if !h.prober.Usable(r.Context(), image) {
				response.Unreachable = append(response.Unreachable, image)
			}
		}
	}

	h.auditSvc.Record(audit.KindValidate, validateDetail(candidate, result))
	utils.RespondJSON(w, http.StatusOK, response)
}

func validateDetail(candidate sistermodel.Sister, result sistermodel.ValidationResult) string {
	if result.Valid {
		return fmt.Sprintf("candidate %q valid", candidate.Name)
	}
	return fmt.Sprintf("candidate %q invalid (%d errors)", candidate.Name, len(result.Errors))
}
