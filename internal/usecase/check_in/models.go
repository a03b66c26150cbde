package check_in

import "time"

// Request модель запроса на отметку о начале использования
type Request struct {
	BookingCode string
	// ConsumableQuantity расход материалов, игнорируется для оборудования без платы за материалы
	ConsumableQuantity *float64
}

// Response модель ответа после отметки
type Response struct {
	ID                 int64
	BookingCode        string
	Status             string
	ActualStart        time.Time
	ConsumableQuantity float64
}
