package search_venue_stations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GSB-BookingService/internal/api/handlers"
	searchVenueStations "github.com/m04kA/GSB-BookingService/internal/usecase/search_venue_stations"
	"github.com/m04kA/GSB-BookingService/pkg/ptr"
	"github.com/m04kA/GSB-BookingService/pkg/types"
)

const (
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime    = "некорректный формат времени, ожидается HH:MM"
	msgInvalidConsole = "некорректный идентификатор консоли"
	msgInvalidQuery   = "некорректные параметры запроса"
	msgVenueNotFound  = "организация не найдена"
)

type Handler struct {
	useCase    SearchVenueStationsUseCase
	dateParser handlers.DateParser
	logger     Logger
}

func NewHandler(useCase SearchVenueStationsUseCase, dateParser handlers.DateParser, logger Logger) *Handler {
	return &Handler{
		useCase:    useCase,
		dateParser: dateParser,
		logger:     logger,
	}
}

// Handle GET /api/v1/organizations/{username}/stations/available
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	req, err := h.parseQuery(r, username)
	if err != nil {
		h.logger.Warn("GET /organizations/%s/stations/available - Invalid query: %v", username, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, searchVenueStations.ErrVenueNotFound):
			h.logger.Warn("GET /organizations/%s/stations/available - Venue not found", username)
			handlers.RespondNotFound(w, msgVenueNotFound)
		case errors.Is(err, searchVenueStations.ErrInvalidInput):
			h.logger.Warn("GET /organizations/%s/stations/available - Validation failed: %v", username, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
		default:
			h.logger.Error("GET /organizations/%s/stations/available - Search failed: %v", username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /organizations/%s/stations/available - Returned %d stations", username, result.Meta.Total)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func (h *Handler) parseQuery(r *http.Request, username string) (*searchVenueStations.Request, error) {
	q := r.URL.Query()

	date, err := h.dateParser.ParseDate(q.Get("date"))
	if err != nil {
		return nil, errors.New(msgInvalidDate)
	}

	startTime, err := types.NewTimeStringFromString(q.Get("startTime"))
	if err != nil {
		return nil, errors.New(msgInvalidTime)
	}
	endTime, err := types.NewTimeStringFromString(q.Get("endTime"))
	if err != nil {
		return nil, errors.New(msgInvalidTime)
	}

	consoleID, err := strconv.ParseInt(q.Get("consoleId"), 10, 64)
	if err != nil {
		return nil, errors.New(msgInvalidConsole)
	}

	req := &searchVenueStations.Request{
		Username:  username,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		ConsoleID: consoleID,
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

	return req, nil
}
