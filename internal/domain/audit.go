package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// AuditAction label of an audited admin action
type AuditAction string

const (
	AuditSetStatus   AuditAction = "set_status"
	AuditEditActuals AuditAction = "edit_actuals"
	AuditDelete      AuditAction = "delete"
)

// AuditEntry append-only record of an admin override
type AuditEntry struct {
	ID            int64
	ReservationID int64
	Action        AuditAction
	Before        json.RawMessage
	After         json.RawMessage // nil on delete
	CreatedAt     time.Time
}

// ReservationSnapshot serialized state of a reservation in audit entries
type ReservationSnapshot struct {
	ID                 int64      `json:"id"`
	EquipmentID        int64      `json:"equipmentId"`
	RequesterName      string     `json:"requesterName"`
	StudentID          string     `json:"studentId"`
	Supervisor         string     `json:"supervisor"`
	Phone              string     `json:"phone"`
	Email              string     `json:"email"`
	RequestedStart     time.Time  `json:"requestedStart"`
	RequestedEnd       time.Time  `json:"requestedEnd"`
	Status             string     `json:"status"`
	BookingCode        string     `json:"bookingCode"`
	ActualStart        *time.Time `json:"actualStart"`
	ActualEnd          *time.Time `json:"actualEnd"`
	ConsumableQuantity float64    `json:"consumableQuantity"`
	TotalCost          *float64   `json:"totalCost"`
	ModifiedCount      int        `json:"modifiedCount"`
	OutOfHours         bool       `json:"outOfHours"`
}

// Snapshot captures the reservation for the audit trail
func (r *Reservation) Snapshot() ReservationSnapshot {
	c := r.Clone()
	return ReservationSnapshot{
		ID:                 c.ID,
		EquipmentID:        c.EquipmentID,
		RequesterName:      c.Requester.Name,
		StudentID:          c.Requester.StudentID,
		Supervisor:         c.Requester.Supervisor,
		Phone:              c.Requester.Phone,
		Email:              c.Requester.Email,
		RequestedStart:     c.RequestedStart,
		RequestedEnd:       c.RequestedEnd,
		Status:             string(c.Status),
		BookingCode:        c.BookingCode,
		ActualStart:        c.ActualStart,
		ActualEnd:          c.ActualEnd,
		ConsumableQuantity: c.ConsumableQuantity,
		TotalCost:          c.TotalCost,
		ModifiedCount:      c.ModifiedCount,
		OutOfHours:         c.OutOfHours,
	}
}

// NewAuditEntry builds an entry from before/after states. after may be nil.
func NewAuditEntry(action AuditAction, before, after *Reservation) (*AuditEntry, error) {
	entry := &AuditEntry{
		ReservationID: before.ID,
		Action:        action,
	}

	raw, err := json.Marshal(before.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("marshal before snapshot: %w", err)
	}
	entry.Before = raw

	if after != nil {
		raw, err := json.Marshal(after.Snapshot())
		if err != nil {
			return nil, fmt.Errorf("marshal after snapshot: %w", err)
		}
		entry.After = raw
	}
	return entry, nil
}
