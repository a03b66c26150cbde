package check_out

import "time"

// Request модель запроса на завершение использования
type Request struct {
	BookingCode string
}

// Response модель ответа с итоговой стоимостью
type Response struct {
	ID                 int64
	BookingCode        string
	Status             string
	ActualStart        time.Time
	ActualEnd          time.Time
	ConsumableQuantity float64
	TotalCost          float64
}
