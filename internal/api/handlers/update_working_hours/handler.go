package update_working_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GSB-BookingService/internal/api/handlers"
	"github.com/m04kA/GSB-BookingService/internal/service/schedule"
)

const (
	msgInvalidOrgID       = "некорректный идентификатор организации"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgVenueNotFound      = "организация не найдена"
	msgWrongEntryCount    = "расписание должно содержать ровно 7 дней"
	msgDuplicateDay       = "день недели указан более одного раза"
	msgConflictingFlags   = "день должен быть ровно в одном режиме: закрыт, круглосуточно или диапазон"
	msgInvalidRange       = "время открытия должно быть раньше времени закрытия"
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

// Handle PUT /api/v1/organizations/{orgId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orgID, err := strconv.ParseInt(mux.Vars(r)["orgId"], 10, 64)
	if err != nil || orgID <= 0 {
		h.logger.Warn("PUT /organizations/{orgId}/working-hours - Invalid org id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	var req UpdateWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /organizations/%d/working-hours - Invalid request body: %v", orgID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	entries, err := req.ToEntries(orgID)
	if err != nil {
		h.logger.Warn("PUT /organizations/%d/working-hours - Invalid time: %v", orgID, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	if err := h.service.ReplaceWeek(r.Context(), orgID, entries); err != nil {
		switch {
		case errors.Is(err, schedule.ErrVenueNotFound):
			h.logger.Warn("PUT /organizations/%d/working-hours - Venue not found", orgID)
			handlers.RespondNotFound(w, msgVenueNotFound)
		case errors.Is(err, schedule.ErrWrongEntryCount):
			h.logger.Warn("PUT /organizations/%d/working-hours - Wrong entry count: %v", orgID, err)
			handlers.RespondBadRequest(w, msgWrongEntryCount)
		case errors.Is(err, schedule.ErrDuplicateDay):
			h.logger.Warn("PUT /organizations/%d/working-hours - Duplicate day: %v", orgID, err)
			handlers.RespondBadRequest(w, msgDuplicateDay)
		case errors.Is(err, schedule.ErrConflictingFlags):
			h.logger.Warn("PUT /organizations/%d/working-hours - Conflicting flags: %v", orgID, err)
			handlers.RespondBadRequest(w, msgConflictingFlags)
		case errors.Is(err, schedule.ErrInvalidRange):
			h.logger.Warn("PUT /organizations/%d/working-hours - Invalid range: %v", orgID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)
		default:
			h.logger.Error("PUT /organizations/%d/working-hours - Failed: %v", orgID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /organizations/%d/working-hours - Schedule replaced", orgID)
	w.WriteHeader(http.StatusNoContent)
}
