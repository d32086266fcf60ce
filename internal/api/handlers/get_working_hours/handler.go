package get_working_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GSB-BookingService/internal/api/handlers"
	"github.com/m04kA/GSB-BookingService/internal/service/schedule"
)

const (
	msgInvalidOrgID  = "некорректный идентификатор организации"
	msgVenueNotFound = "организация не найдена"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/organizations/{orgId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orgID, err := strconv.ParseInt(mux.Vars(r)["orgId"], 10, 64)
	if err != nil || orgID <= 0 {
		h.logger.Warn("GET /organizations/{orgId}/working-hours - Invalid org id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	week, err := h.service.GetWeek(r.Context(), orgID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrVenueNotFound):
			h.logger.Warn("GET /organizations/%d/working-hours - Venue not found", orgID)
			handlers.RespondNotFound(w, msgVenueNotFound)
		default:
			h.logger.Error("GET /organizations/%d/working-hours - Failed: %v", orgID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /organizations/%d/working-hours - Returned", orgID)
	handlers.RespondJSON(w, http.StatusOK, FromWeek(week))
}
