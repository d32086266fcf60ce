package create_block

import (
	"time"

	"github.com/m04kA/GSB-BookingService/internal/domain"
	createBlock "github.com/m04kA/GSB-BookingService/internal/usecase/create_block"
	"github.com/m04kA/GSB-BookingService/pkg/types"
)

// CreateBlockRequest HTTP request model
// UserID опционален: пустое значение означает блокировку без клиента
type CreateBlockRequest struct {
	UserID       *int64 `json:"userId,omitempty"`
	VenueID      int64  `json:"venueId"`
	StationID    int64  `json:"stationId"`
	ConsoleID    int64  `json:"consoleId"`
	Date         string `json:"date"`      // "2025-10-15"
	StartTime    string `json:"startTime"` // "10:00"
	EndTime      string `json:"endTime"`   // "10:30"
	PlayersCount int    `json:"playersCount"`
	Price        *int64 `json:"price,omitempty"` // явная цена вместо тарифа
}

// BlockResponse HTTP response model
type BlockResponse struct {
	ID           int64  `json:"id"`
	UserID       *int64 `json:"userId,omitempty"`
	VenueID      int64  `json:"venueId"`
	StationID    int64  `json:"stationId"`
	ConsoleID    int64  `json:"consoleId"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	PlayersCount int    `json:"playersCount"`
	Price        int64  `json:"price"`
	IsPaid       bool   `json:"isPaid"`
	IsAccepted   bool   `json:"isAccepted"`
	CreatedAt    string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBlockRequest) ToUseCaseRequest(date time.Time) (*createBlock.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBlock.Request{
		UserID:        r.UserID,
		VenueID:       r.VenueID,
		StationID:     r.StationID,
		ConsoleID:     r.ConsoleID,
		Date:          date,
		StartTime:     startTime,
		EndTime:       endTime,
		PlayersCount:  r.PlayersCount,
		OverridePrice: r.Price,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBlock.Response) *BlockResponse {
	return &BlockResponse{
		ID:           resp.ID,
		UserID:       resp.UserID,
		VenueID:      resp.VenueID,
		StationID:    resp.StationID,
		ConsoleID:    resp.ConsoleID,
		Date:         resp.Date.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		PlayersCount: resp.PlayersCount,
		Price:        resp.Price,
		IsPaid:       resp.IsPaid,
		IsAccepted:   resp.IsAccepted,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}
}
