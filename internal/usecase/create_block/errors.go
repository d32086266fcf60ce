package create_block

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_block: invalid input data")

	// ErrInvalidTimeSlot возвращается при невыровненном или неверном интервале
	ErrInvalidTimeSlot = errors.New("create_block: invalid time slot")

	// ErrStartInPast возвращается, когда начало блокировки в прошлом
	ErrStartInPast = errors.New("create_block: start time is in the past")

	// ErrStationNotFound возвращается, когда станция не найдена или не бронируема
	ErrStationNotFound = errors.New("create_block: station not found or not bookable")

	// ErrStationMismatch возвращается, когда станция не принадлежит заявленным венью и консоли
	ErrStationMismatch = errors.New("create_block: station does not belong to the claimed venue and console")

	// ErrCapacityExceeded возвращается, когда игроков больше вместимости станции
	ErrCapacityExceeded = errors.New("create_block: players count exceeds station capacity")

	// ErrNoPricingTier возвращается, когда нет ни тарифа, ни явной цены
	ErrNoPricingTier = errors.New("create_block: no pricing tier and no override price")

	// ErrSlotConflict возвращается, когда интервал уже занят
	ErrSlotConflict = errors.New("create_block: slot is already taken")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_block: internal error")
)
