package venue

import "errors"

var (
	// ErrVenueNotFound возвращается, когда венью не найдено
	ErrVenueNotFound = errors.New("venue.repository: venue not found")

	// ErrIncompleteWeek возвращается при попытке записать расписание не на все 7 дней
	ErrIncompleteWeek = errors.New("venue.repository: working hours must cover all 7 days")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("venue.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("venue.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("venue.repository: failed to scan row")
)
