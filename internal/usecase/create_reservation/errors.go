package create_reservation

import "errors"

var (
	// ErrCodeGeneration возвращается, когда не удалось подобрать свободный код бронирования
	ErrCodeGeneration = errors.New("create_reservation: failed to generate unique booking code")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
