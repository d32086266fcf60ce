package get_session

import (
	"time"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	"github.com/m04kA/GSB-BookingService/pkg/types"
)

// SessionResponse HTTP response model
type SessionResponse struct {
	ID           string       `json:"id"`
	StationID    int64        `json:"stationId"`
	Date         string       `json:"date"`
	StartTime    string       `json:"startTime"`
	EndTime      string       `json:"endTime"`
	PlayersCount int          `json:"playersCount"`
	Status       string       `json:"status"`
	ExpireAt     string       `json:"expireAt"`
	CreatedAt    string       `json:"createdAt"`
	Invoice      *InvoiceJSON `json:"invoice,omitempty"`
}

// InvoiceJSON счёт сессии
type InvoiceJSON struct {
	ID             string `json:"id"`
	PriceBeforeTax int64  `json:"priceBeforeTax"`
	Tax            int64  `json:"tax"`
	TotalPrice     int64  `json:"totalPrice"`
	Status         string `json:"status"`
	ExpireAt       string `json:"expireAt"`
}

// FromDomain конвертирует доменную сессию со счётом в HTTP response
func FromDomain(s *domain.Session, inv *domain.Invoice) *SessionResponse {
	startTime, _ := types.FromMinutes(s.StartMinute)
	endTime, _ := types.FromMinutes(s.EndMinute)

	resp := &SessionResponse{
		ID:           s.ID.String(),
		StationID:    s.StationID,
		Date:         s.Date.Format(domain.DateFormat),
		StartTime:    startTime.String(),
		EndTime:      endTime.String(),
		PlayersCount: s.PlayersCount,
		Status:       string(s.Status),
		ExpireAt:     s.ExpireAt.Format(time.RFC3339),
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
	}

	if inv != nil {
		resp.Invoice = &InvoiceJSON{
			ID:             inv.ID.String(),
			PriceBeforeTax: inv.PriceBeforeTax,
			Tax:            inv.Tax,
			TotalPrice:     inv.TotalPrice,
			Status:         string(inv.Status),
			ExpireAt:       inv.ExpireAt.Format(time.RFC3339),
		}
	}

	return resp
}
