package handlers

import (
	"time"

	"github.com/m04kA/GSB-BookingService/internal/domain"
)

// DateParser переводит строку даты локального календаря клиента в гражданскую
// дату. Календарная конверсия - внешняя забота: движок бронирования получает
// её как чистую функцию и не знает деталей локали
type DateParser interface {
	ParseDate(s string) (time.Time, error)
}

// CivilDateParser парсер дат формата YYYY-MM-DD
type CivilDateParser struct{}

// ParseDate парсит дату "2006-01-02"
func (CivilDateParser) ParseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, s)
}
