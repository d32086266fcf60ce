package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/GSB-BookingService/internal/api/handlers"
	checkAvailability "github.com/m04kA/GSB-BookingService/internal/usecase/check_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput       = "некорректные параметры запроса"
	msgStationNotFound    = "станция не найдена"
)

type Handler struct {
	useCase    CheckAvailabilityUseCase
	dateParser handlers.DateParser
	logger     Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, dateParser handlers.DateParser, logger Logger) *Handler {
	return &Handler{
		useCase:    useCase,
		dateParser: dateParser,
		logger:     logger,
	}
}

// Handle POST /api/v1/availability/check
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := h.dateParser.ParseDate(req.ReservedDate)
	if err != nil {
		h.logger.Warn("POST /availability/check - Invalid date %q: %v", req.ReservedDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(date)
	if err != nil {
		h.logger.Warn("POST /availability/check - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrStationNotFound):
			h.logger.Warn("POST /availability/check - Station not found: station_id=%d", req.StationID)
			handlers.RespondNotFound(w, msgStationNotFound)
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("POST /availability/check - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /availability/check - Check failed: station_id=%d, error=%v", req.StationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/check - station_id=%d, available=%v", req.StationID, result.IsAvailable)
	handlers.RespondJSON(w, http.StatusOK, CheckAvailabilityResponse{IsAvailable: result.IsAvailable})
}
