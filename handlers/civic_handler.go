package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Vikesh2608/EagleReach/models"
	"github.com/Vikesh2608/EagleReach/providers"
	"github.com/Vikesh2608/EagleReach/services"
	"github.com/Vikesh2608/EagleReach/shared/utils"
)

// CivicHandler handles official lookup requests
type CivicHandler struct {
	lookup *services.LookupService
	debug  bool
}

// NewCivicHandler creates a new civic lookup handler
func NewCivicHandler(lookup *services.LookupService, debug bool) *CivicHandler {
	return &CivicHandler{lookup: lookup, debug: debug}
}

// Ask handles POST /ask
func (h *CivicHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.AskRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON input")
		return
	}

	address := strings.TrimSpace(req.Address)
	slog.Info("Ask start", "address", address)

	if address == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Address/ZIP is required.")
		return
	}

	officials, err := h.lookup.GetOfficials(r.Context(), address)
	if err != nil {
		// Bad ZIP or no match is a user error; anything else is upstream
		if providers.IsLookupError(err) {
			slog.Warn("Ask lookup error", "address", address, "error", err)
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		slog.Error("Ask failed", "address", address, "error", err)
		if h.debug {
			utils.RespondWithError(w, http.StatusBadGateway, fmt.Sprintf("%T: %v", err, err))
			return
		}
		utils.RespondWithError(w, http.StatusBadGateway, "Upstream civic data lookup failed.")
		return
	}

	slog.Info("Ask ok", "address", address, "officials", len(officials))
	utils.RespondWithJSON(w, http.StatusOK, models.AskResponse{Officials: officials})
}
