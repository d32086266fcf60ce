package create_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/GSB-BookingService/internal/api/handlers"
	createBlock "github.com/m04kA/GSB-BookingService/internal/usecase/create_block"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput       = "некорректные параметры запроса"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgStartInPast        = "время начала блокировки уже прошло"
	msgStationNotFound    = "станция не найдена"
	msgStationMismatch    = "станция не принадлежит указанным организации и консоли"
	msgCapacityExceeded   = "количество игроков превышает вместимость станции"
	msgNoPricingTier      = "тариф не задан, укажите цену явно"
	msgSlotConflict       = "выбранный слот уже занят"
)

type Handler struct {
	useCase    CreateBlockUseCase
	dateParser handlers.DateParser
	logger     Logger
}

func NewHandler(useCase CreateBlockUseCase, dateParser handlers.DateParser, logger Logger) *Handler {
	return &Handler{
		useCase:    useCase,
		dateParser: dateParser,
		logger:     logger,
	}
}

// Handle POST /api/v1/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := h.dateParser.ParseDate(req.Date)
	if err != nil {
		h.logger.Warn("POST /blocks - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(date)
	if err != nil {
		h.logger.Warn("POST /blocks - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBlock.ErrSlotConflict):
			h.logger.Warn("POST /blocks - Slot conflict: station_id=%d", req.StationID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createBlock.ErrStationNotFound):
			h.logger.Warn("POST /blocks - Station not found: station_id=%d", req.StationID)
			handlers.RespondNotFound(w, msgStationNotFound)

		case errors.Is(err, createBlock.ErrStationMismatch):
			h.logger.Warn("POST /blocks - Station mismatch: station_id=%d, venue_id=%d", req.StationID, req.VenueID)
			handlers.RespondBadRequest(w, msgStationMismatch)

		case errors.Is(err, createBlock.ErrInvalidTimeSlot):
			h.logger.Warn("POST /blocks - Invalid time slot: station_id=%d", req.StationID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBlock.ErrStartInPast):
			h.logger.Warn("POST /blocks - Start in past: station_id=%d", req.StationID)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createBlock.ErrCapacityExceeded):
			h.logger.Warn("POST /blocks - Capacity exceeded: station_id=%d", req.StationID)
			handlers.RespondBadRequest(w, msgCapacityExceeded)

		case errors.Is(err, createBlock.ErrNoPricingTier):
			h.logger.Warn("POST /blocks - No pricing tier: station_id=%d", req.StationID)
			handlers.RespondBadRequest(w, msgNoPricingTier)

		case errors.Is(err, createBlock.ErrInvalidInput):
			h.logger.Warn("POST /blocks - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /blocks - Failed: station_id=%d, error=%v", req.StationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /blocks - Block created: id=%d, station_id=%d", result.ID, req.StationID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
