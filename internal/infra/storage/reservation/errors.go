package reservation

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSlotConflict возвращается, когда окно пересекается с открытым бронированием
	// (нарушение exclusion constraint или сбой сериализации)
	ErrSlotConflict = errors.New("reservation.repository: slot conflict")

	// ErrDuplicateCode возвращается при коллизии кода бронирования
	ErrDuplicateCode = errors.New("reservation.repository: duplicate booking code")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)

// PostgreSQL error codes
const (
	pqExclusionViolation   = "23P01"
	pqUniqueViolation      = "23505"
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
	bookingCodeUniqueIndex = "reservations_booking_code_uidx"
)

// IsConflict сообщает, что err вызван конкурентным занятием слота:
// нарушением exclusion constraint, сбоем сериализации или взаимоблокировкой.
// Проверяет всю цепочку, включая ошибки COMMIT.
func IsConflict(err error) bool {
	if errors.Is(err, ErrSlotConflict) {
		return true
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code {
	case pqExclusionViolation, pqSerializationFailure, pqDeadlockDetected:
		return true
	default:
		return false
	}
}

func isDuplicateCode(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation && pqErr.Constraint == bookingCodeUniqueIndex
}
