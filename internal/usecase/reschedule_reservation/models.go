package reschedule_reservation

import "time"

// Request модель запроса на перенос бронирования
type Request struct {
	BookingCode string
	Start       time.Time
	End         time.Time
}

// Response модель ответа с перенесенным бронированием
type Response struct {
	ID             int64
	BookingCode    string
	Status         string
	OutOfHours     bool
	ModifiedCount  int
	RequestedStart time.Time
	RequestedEnd   time.Time
}
