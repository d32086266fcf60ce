package get_session

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/GSB-BookingService/internal/api/handlers"
	"github.com/m04kA/GSB-BookingService/internal/api/middleware"
	"github.com/m04kA/GSB-BookingService/internal/service/sessions"
)

const (
	msgUnauthorized     = "требуется аутентификация"
	msgInvalidSessionID = "некорректный идентификатор сессии"
	msgSessionNotFound  = "сессия не найдена"
	msgAccessDenied     = "доступ к чужой сессии запрещён"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /sessions/{sessionId} - Missing user id in context")
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	sessionID, err := uuid.Parse(mux.Vars(r)["sessionId"])
	if err != nil {
		h.logger.Warn("GET /sessions/{sessionId} - Invalid session id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	session, invoice, err := h.service.GetByID(r.Context(), sessionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("GET /sessions/%s - Session not found", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)
		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("GET /sessions/%s - Access denied for user_id=%d", sessionID, userID)
			handlers.RespondError(w, http.StatusForbidden, msgAccessDenied)
		default:
			h.logger.Error("GET /sessions/%s - Failed: %v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /sessions/%s - Returned for user_id=%d", sessionID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(session, invoice))
}
