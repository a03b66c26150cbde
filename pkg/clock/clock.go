package clock

import "time"

// Clock источник текущего времени в часовом поясе развертывания.
// Все календарные вычисления (горизонт бронирования, "сегодня", день недели)
// выполняются в этом часовом поясе.
type Clock struct {
	loc *time.Location
}

// New создает часы для указанного часового пояса (nil = time.Local)
func New(loc *time.Location) *Clock {
	if loc == nil {
		loc = time.Local
	}
	return &Clock{loc: loc}
}

// Now возвращает текущее время в часовом поясе развертывания
func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Location возвращает часовой пояс развертывания
func (c *Clock) Location() *time.Location {
	return c.loc
}

// Fixed часы, которые всегда возвращают одно и то же время (для тестов и утилит)
type Fixed struct {
	T time.Time
}

// Now возвращает зафиксированное время
func (f *Fixed) Now() time.Time {
	return f.T
}

// Location возвращает часовой пояс зафиксированного времени
func (f *Fixed) Location() *time.Location {
	return f.T.Location()
}
