package create_session

import (
	"time"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	createSession "github.com/m04kA/GSB-BookingService/internal/usecase/create_session"
	"github.com/m04kA/GSB-BookingService/pkg/types"
)

// CreateSessionRequest HTTP request model
type CreateSessionRequest struct {
	StationID    int64  `json:"stationId"`
	Date         string `json:"date"`      // "2025-10-15"
	StartTime    string `json:"startTime"` // "10:00"
	EndTime      string `json:"endTime"`   // "10:30"
	PlayersCount int    `json:"playersCount"`
}

// SessionResponse HTTP response model
type SessionResponse struct {
	SessionID      string      `json:"sessionId"`
	InvoiceID      string      `json:"invoiceId"`
	PriceBeforeTax int64       `json:"priceBeforeTax"`
	Tax            int64       `json:"tax"`
	TotalPrice     int64       `json:"totalPrice"`
	ExpireAt       string      `json:"expireAt"`
	Session        SessionJSON `json:"session"`
}

// SessionJSON данные сессии
type SessionJSON struct {
	ID           string `json:"id"`
	StationID    int64  `json:"stationId"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	PlayersCount int    `json:"playersCount"`
	Status       string `json:"status"`
	ExpireAt     string `json:"expireAt"`
	CreatedAt    string `json:"createdAt"`
}

// PreviewResponse HTTP response model предпросмотра
type PreviewResponse struct {
	IsAvailable    bool  `json:"isAvailable"`
	PriceBeforeTax int64 `json:"priceBeforeTax"`
	Tax            int64 `json:"tax"`
	TotalPrice     int64 `json:"totalPrice"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateSessionRequest) ToUseCaseRequest(userID int64, date time.Time) (*createSession.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createSession.Request{
		UserID:       userID,
		StationID:    r.StationID,
		Date:         date,
		StartTime:    startTime,
		EndTime:      endTime,
		PlayersCount: r.PlayersCount,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createSession.Response) *SessionResponse {
	return &SessionResponse{
		SessionID:      resp.SessionID.String(),
		InvoiceID:      resp.InvoiceID.String(),
		PriceBeforeTax: resp.PriceBeforeTax,
		Tax:            resp.Tax,
		TotalPrice:     resp.TotalPrice,
		ExpireAt:       resp.ExpireAt.Format(time.RFC3339),
		Session: SessionJSON{
			ID:           resp.Session.ID.String(),
			StationID:    resp.Session.StationID,
			Date:         resp.Session.Date.Format(domain.DateFormat),
			StartTime:    resp.Session.StartTime.String(),
			EndTime:      resp.Session.EndTime.String(),
			PlayersCount: resp.Session.PlayersCount,
			Status:       resp.Session.Status,
			ExpireAt:     resp.Session.ExpireAt.Format(time.RFC3339),
			CreatedAt:    resp.Session.CreatedAt.Format(time.RFC3339),
		},
	}
}
