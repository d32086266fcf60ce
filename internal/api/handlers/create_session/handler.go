package create_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/GSB-BookingService/internal/api/handlers"
	"github.com/m04kA/GSB-BookingService/internal/api/middleware"
	createSession "github.com/m04kA/GSB-BookingService/internal/usecase/create_session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidInput       = "некорректные параметры запроса"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgStartInPast        = "время начала сессии уже прошло"
	msgStationNotFound    = "станция не найдена"
	msgCapacityExceeded   = "количество игроков превышает вместимость станции"
	msgNoPricingTier      = "тариф на указанное количество игроков не задан"
	msgSlotConflict       = "выбранный слот уже занят"
)

type Handler struct {
	useCase    CreateSessionUseCase
	dateParser handlers.DateParser
	logger     Logger
}

func NewHandler(useCase CreateSessionUseCase, dateParser handlers.DateParser, logger Logger) *Handler {
	return &Handler{
		useCase:    useCase,
		dateParser: dateParser,
		logger:     logger,
	}
}

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, ok := h.decodeRequest(w, r, "POST /sessions")
	if !ok {
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, "POST /sessions", useCaseReq.StationID, err)
		return
	}

	h.logger.Info("POST /sessions - Session created: session_id=%s, user_id=%d, station_id=%d, total=%d",
		result.SessionID, useCaseReq.UserID, useCaseReq.StationID, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// HandlePreview POST /api/v1/sessions/preview
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	useCaseReq, ok := h.decodeRequest(w, r, "POST /sessions/preview")
	if !ok {
		return
	}

	result, err := h.useCase.Preview(r.Context(), useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, "POST /sessions/preview", useCaseReq.StationID, err)
		return
	}

	h.logger.Info("POST /sessions/preview - station_id=%d, available=%v, total=%d",
		useCaseReq.StationID, result.IsAvailable, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusOK, PreviewResponse{
		IsAvailable:    result.IsAvailable,
		PriceBeforeTax: result.PriceBeforeTax,
		Tax:            result.Tax,
		TotalPrice:     result.TotalPrice,
	})
}

func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request, op string) (*createSession.Request, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user id in context", op)
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return nil, false
	}

	var req CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return nil, false
	}

	date, err := h.dateParser.ParseDate(req.Date)
	if err != nil {
		h.logger.Warn("%s - Invalid date %q: %v", op, req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return nil, false
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, date)
	if err != nil {
		h.logger.Warn("%s - Invalid time: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return nil, false
	}

	return useCaseReq, true
}

func (h *Handler) respondUseCaseError(w http.ResponseWriter, op string, stationID int64, err error) {
	switch {
	case errors.Is(err, createSession.ErrSlotConflict):
		h.logger.Warn("%s - Slot conflict: station_id=%d", op, stationID)
		handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

	case errors.Is(err, createSession.ErrStationNotFound):
		h.logger.Warn("%s - Station not found: station_id=%d", op, stationID)
		handlers.RespondNotFound(w, msgStationNotFound)

	case errors.Is(err, createSession.ErrInvalidTimeSlot):
		h.logger.Warn("%s - Invalid time slot: station_id=%d", op, stationID)
		handlers.RespondBadRequest(w, msgInvalidTimeSlot)

	case errors.Is(err, createSession.ErrStartInPast):
		h.logger.Warn("%s - Start in past: station_id=%d", op, stationID)
		handlers.RespondBadRequest(w, msgStartInPast)

	case errors.Is(err, createSession.ErrCapacityExceeded):
		h.logger.Warn("%s - Capacity exceeded: station_id=%d", op, stationID)
		handlers.RespondBadRequest(w, msgCapacityExceeded)

	case errors.Is(err, createSession.ErrNoPricingTier):
		h.logger.Warn("%s - No pricing tier: station_id=%d", op, stationID)
		handlers.RespondBadRequest(w, msgNoPricingTier)

	case errors.Is(err, createSession.ErrInvalidInput):
		h.logger.Warn("%s - Validation failed: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: station_id=%d, error=%v", op, stationID, err)
		handlers.RespondInternalError(w)
	}
}
