package cancel_session

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
	msgNotCancellable   = "сессию в текущем статусе нельзя отменить"
)

// CancelResponse HTTP response model
type CancelResponse struct {
	Status string `json:"status"`
}

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

// Handle PATCH /api/v1/sessions/{sessionId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("PATCH /sessions/{sessionId}/cancel - Missing user id in context")
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	sessionID, err := uuid.Parse(mux.Vars(r)["sessionId"])
	if err != nil {
		h.logger.Warn("PATCH /sessions/{sessionId}/cancel - Invalid session id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	if err := h.service.Cancel(r.Context(), sessionID, userID); err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/%s/cancel - Session not found", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)
		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("PATCH /sessions/%s/cancel - Access denied for user_id=%d", sessionID, userID)
			handlers.RespondError(w, http.StatusForbidden, msgAccessDenied)
		case errors.Is(err, sessions.ErrNotCancellable):
			h.logger.Warn("PATCH /sessions/%s/cancel - Not cancellable: %v", sessionID, err)
			handlers.RespondError(w, http.StatusConflict, msgNotCancellable)
		default:
			h.logger.Error("PATCH /sessions/%s/cancel - Failed: %v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sessions/%s/cancel - Cancelled by user_id=%d", sessionID, userID)
	handlers.RespondJSON(w, http.StatusOK, CancelResponse{Status: "revoked"})
}
