package search_open_venues

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/GSB-BookingService/internal/api/handlers"
	searchOpenVenues "github.com/m04kA/GSB-BookingService/internal/usecase/search_open_venues"
	"github.com/m04kA/GSB-BookingService/pkg/ptr"
	"github.com/m04kA/GSB-BookingService/pkg/types"
)

const (
	msgInvalidCoordinates = "некорректные координаты центра поиска"
	msgInvalidRadius      = "некорректный радиус поиска"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidQuery       = "некорректные параметры запроса"
)

type Handler struct {
	useCase    SearchOpenVenuesUseCase
	dateParser handlers.DateParser
	logger     Logger
}

func NewHandler(useCase SearchOpenVenuesUseCase, dateParser handlers.DateParser, logger Logger) *Handler {
	return &Handler{
		useCase:    useCase,
		dateParser: dateParser,
		logger:     logger,
	}
}

// Handle GET /api/v1/organizations/search
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /organizations/search - Invalid query: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, searchOpenVenues.ErrInvalidInput):
			h.logger.Warn("GET /organizations/search - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
		default:
			h.logger.Error("GET /organizations/search - Search failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /organizations/search - Returned %d organizations", len(result.Organizations))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// parseQuery разбирает query-параметры в модель use case
func (h *Handler) parseQuery(r *http.Request) (*searchOpenVenues.Request, error) {
	q := r.URL.Query()

	latitude, err := strconv.ParseFloat(q.Get("latitude"), 64)
	if err != nil {
		return nil, errors.New(msgInvalidCoordinates)
	}
	longitude, err := strconv.ParseFloat(q.Get("longitude"), 64)
	if err != nil {
		return nil, errors.New(msgInvalidCoordinates)
	}
	radiusKm, err := strconv.Atoi(q.Get("radiusKm"))
	if err != nil {
		return nil, errors.New(msgInvalidRadius)
	}

	req := &searchOpenVenues.Request{
		Latitude:  latitude,
		Longitude: longitude,
		RadiusKm:  radiusKm,
	}

	if v := q.Get("date"); v != "" {
		date, err := h.dateParser.ParseDate(v)
		if err != nil {
			return nil, errors.New(msgInvalidDate)
		}
		req.Date = &date
	}
	if v := q.Get("startTime"); v != "" {
		startTime, err := types.NewTimeStringFromString(v)
		if err != nil {
			return nil, errors.New(msgInvalidTime)
		}
		req.StartTime = &startTime
	}
	if v := q.Get("endTime"); v != "" {
		endTime, err := types.NewTimeStringFromString(v)
		if err != nil {
			return nil, errors.New(msgInvalidTime)
		}
		req.EndTime = &endTime
	}
	if v := q.Get("province"); v != "" {
		req.Province = ptr.Ptr(v)
	}
	if v := q.Get("city"); v != "" {
		req.City = ptr.Ptr(v)
	}
	if v := q.Get("consoleId"); v != "" {
		consoleID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.New(msgInvalidQuery)
		}
		req.ConsoleID = ptr.Ptr(consoleID)
	}
	if v := q.Get("gameId"); v != "" {
		gameID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.New(msgInvalidQuery)
		}
		req.GameID = ptr.Ptr(gameID)
	}
	if v := q.Get("playerCount"); v != "" {
		playerCount, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New(msgInvalidQuery)
		}
		req.PlayersCount = ptr.Ptr(playerCount)
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New(msgInvalidQuery)
		}
		req.Limit = ptr.Ptr(limit)
	}

	return req, nil
}
