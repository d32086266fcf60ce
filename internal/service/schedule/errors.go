package schedule

import "errors"

var (
	// ErrVenueNotFound возвращается, когда венью не найдено
	ErrVenueNotFound = errors.New("service schedule: venue not found")

	// ErrWrongEntryCount возвращается, когда в неделе не ровно 7 записей
	ErrWrongEntryCount = errors.New("service schedule: week must contain exactly 7 entries")

	// ErrDuplicateDay возвращается, когда день недели встречается дважды
	ErrDuplicateDay = errors.New("service schedule: duplicate day of week")

	// ErrConflictingFlags возвращается, когда запись задаёт не ровно один режим дня
	ErrConflictingFlags = errors.New("service schedule: entry must set exactly one of closed, open24h or time range")

	// ErrInvalidRange возвращается при некорректном диапазоне открытия
	ErrInvalidRange = errors.New("service schedule: open time must be before close time")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service schedule: internal error")
)
