package create_session

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_session: invalid input data")

	// ErrInvalidTimeSlot возвращается, когда интервал не равен 30 минутам
	// или не выровнен по сетке :00/:30
	ErrInvalidTimeSlot = errors.New("create_session: invalid time slot")

	// ErrStartInPast возвращается, когда начало сессии в прошлом
	ErrStartInPast = errors.New("create_session: start time is in the past")

	// ErrStationNotFound возвращается, когда станция не найдена или не бронируема
	ErrStationNotFound = errors.New("create_session: station not found or not bookable")

	// ErrCapacityExceeded возвращается, когда игроков больше вместимости станции
	ErrCapacityExceeded = errors.New("create_session: players count exceeds station capacity")

	// ErrNoPricingTier возвращается, когда тариф на указанное количество игроков не задан
	ErrNoPricingTier = errors.New("create_session: no pricing tier for players count")

	// ErrSlotConflict возвращается, когда слот занят или проигран конкурентной брони
	ErrSlotConflict = errors.New("create_session: slot is already taken")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_session: internal error")
)
