package domain

import "time"

// ApplicationStatus status of a whitelist application
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// ParseApplicationStatus converts a string into a known application status
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch status := ApplicationStatus(s); status {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return status, nil
	default:
		return "", WithDetail(ErrInvalidStatus, "%q", s)
	}
}

// WhitelistApplication request of a person to be allowed on whitelisted equipment
type WhitelistApplication struct {
	ID          int64
	EquipmentID int64
	Requester   Requester
	Status      ApplicationStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewWhitelistApplication creates a pending application
func NewWhitelistApplication(equipmentID int64, requester Requester) *WhitelistApplication {
	requester.Name = NormalizeName(requester.Name)
	return &WhitelistApplication{
		EquipmentID: equipmentID,
		Requester:   requester,
		Status:      ApplicationPending,
	}
}

// Approve transitions pending → approved and adds the applicant to the equipment whitelist.
// It never creates a reservation.
func (a *WhitelistApplication) Approve(equipment *Equipment) error {
	if a.Status != ApplicationPending {
		return ErrApplicationDecided
	}
	a.Status = ApplicationApproved
	equipment.AddToWhitelist(a.Requester.Name)
	return nil
}

// Reject transitions pending → rejected
func (a *WhitelistApplication) Reject() error {
	if a.Status != ApplicationPending {
		return ErrApplicationDecided
	}
	a.Status = ApplicationRejected
	return nil
}
