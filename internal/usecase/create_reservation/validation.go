package create_reservation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

// validateRequest проверяет входные данные до обращения к хранилищу
func validateRequest(req *Request) error {
	if req.EquipmentID <= 0 {
		return fmt.Errorf("%w: equipment id must be positive", domain.ErrInvalidInput)
	}

	name := strings.TrimSpace(req.Requester.Name)
	if name == "" {
		return fmt.Errorf("%w: requester name is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxRequesterNameLength {
		return fmt.Errorf("%w: requester name is longer than %d characters",
			domain.ErrInvalidInput, domain.MaxRequesterNameLength)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", domain.ErrInvalidInput)
	}
	return nil
}
