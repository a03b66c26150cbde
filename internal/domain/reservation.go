package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusApproved  ReservationStatus = "approved"
	StatusRejected  ReservationStatus = "rejected"
	StatusActive    ReservationStatus = "active"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// ParseReservationStatus converts a string into a known status
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch status := ReservationStatus(s); status {
	case StatusPending, StatusApproved, StatusRejected, StatusActive, StatusCompleted, StatusCancelled:
		return status, nil
	default:
		return "", WithDetail(ErrInvalidStatus, "%q", s)
	}
}

// IsOpen returns true if the status occupies the equipment slot
func (s ReservationStatus) IsOpen() bool {
	return s == StatusPending || s == StatusApproved || s == StatusActive
}

// Requester identity of the person who booked. All fields are opaque strings.
type Requester struct {
	Name       string
	StudentID  string
	Supervisor string
	Phone      string
	Email      string
}

// Reservation represents a booking of one equipment for a time window
type Reservation struct {
	ID          int64
	EquipmentID int64
	Requester   Requester

	RequestedStart time.Time
	RequestedEnd   time.Time
	Status         ReservationStatus
	BookingCode    string

	ActualStart        *time.Time
	ActualEnd          *time.Time
	ConsumableQuantity float64
	TotalCost          *float64

	ModifiedCount int
	OutOfHours    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InitialStatus out-of-hours requests always wait for approval
func InitialStatus(equipment *Equipment, outOfHours bool) ReservationStatus {
	if outOfHours || !equipment.AutoApprove {
		return StatusPending
	}
	return StatusApproved
}

// NewReservation creates a reservation in its initial status
func NewReservation(equipment *Equipment, requester Requester, start, end time.Time, outOfHours bool, code string) *Reservation {
	requester.Name = NormalizeName(requester.Name)
	return &Reservation{
		EquipmentID:    equipment.ID,
		Requester:      requester,
		RequestedStart: start,
		RequestedEnd:   end,
		Status:         InitialStatus(equipment, outOfHours),
		BookingCode:    code,
		OutOfHours:     outOfHours,
	}
}

// Window returns the requested half-open window
func (r *Reservation) Window() TimeRange {
	return TimeRange{Start: r.RequestedStart, End: r.RequestedEnd}
}

// CheckInWindow returns the closed interval in which check-in is allowed
func (r *Reservation) CheckInWindow() TimeRange {
	return TimeRange{
		Start: r.RequestedStart.Add(-CheckInWindow),
		End:   r.RequestedStart.Add(CheckInWindow),
	}
}

// Cancel transitions pending/approved → cancelled
func (r *Reservation) Cancel() error {
	if r.Status != StatusPending && r.Status != StatusApproved {
		return ErrCannotCancel
	}
	r.Status = StatusCancelled
	return nil
}

// Approve transitions pending → approved
func (r *Reservation) Approve() error {
	if r.Status != StatusPending {
		return ErrNotPending
	}
	r.Status = StatusApproved
	return nil
}

// Reject transitions pending → rejected
func (r *Reservation) Reject() error {
	if r.Status != StatusPending {
		return ErrNotPending
	}
	r.Status = StatusRejected
	return nil
}

// CanReschedule checks status and the single-reschedule limit.
// Must be evaluated before validating the new window.
func (r *Reservation) CanReschedule() error {
	if r.Status != StatusPending && r.Status != StatusApproved {
		return ErrCannotReschedule
	}
	if r.ModifiedCount != 0 {
		return ErrAlreadyModified
	}
	return nil
}

// Reschedule moves the reservation to an already validated window
func (r *Reservation) Reschedule(equipment *Equipment, start, end time.Time, outOfHours bool) error {
	if err := r.CanReschedule(); err != nil {
		return err
	}
	r.RequestedStart = start
	r.RequestedEnd = end
	r.OutOfHours = outOfHours
	r.Status = InitialStatus(equipment, outOfHours)
	r.ModifiedCount = 1
	return nil
}

// CheckIn transitions approved → active and records the actual start
func (r *Reservation) CheckIn(equipment *Equipment, now time.Time, consumableQuantity float64) error {
	if r.Status != StatusApproved {
		return ErrNotApproved
	}

	window := r.CheckInWindow()
	if now.Before(window.Start) {
		return WithDetail(ErrCheckInTooEarly, "allowed from %s to %s",
			window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339))
	}
	if now.After(window.End) {
		return WithDetail(ErrCheckInTooLate, "allowed from %s to %s",
			window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339))
	}

	if !equipment.HasConsumables() {
		consumableQuantity = 0
	}
	if consumableQuantity < 0 {
		return ErrInvalidConsumableQuantity
	}

	actualStart := now
	r.ActualStart = &actualStart
	r.ConsumableQuantity = consumableQuantity
	r.Status = StatusActive
	return nil
}

// CheckOut transitions active → completed, records the actual end and bills usage
func (r *Reservation) CheckOut(equipment *Equipment, now time.Time) error {
	if r.Status != StatusActive || r.ActualStart == nil {
		return ErrNotActive
	}

	actualEnd := now
	cost := equipment.Cost(*r.ActualStart, actualEnd, r.ConsumableQuantity)

	r.ActualEnd = &actualEnd
	r.TotalCost = &cost
	r.Status = StatusCompleted
	return nil
}

// ActualsOverride admin correction of usage data. Nil fields are left untouched.
type ActualsOverride struct {
	ActualStart        *time.Time
	ActualEnd          *time.Time
	ConsumableQuantity *float64
	TotalCost          *float64
	// Recalculate re-bills from the resulting actuals when TotalCost is not given
	Recalculate bool
}

// ApplyOverride applies an admin correction. Admin input is trusted and not validated
// against the lifecycle; only a negative quantity is refused.
func (r *Reservation) ApplyOverride(equipment *Equipment, o ActualsOverride) error {
	if o.ConsumableQuantity != nil && *o.ConsumableQuantity < 0 {
		return ErrInvalidConsumableQuantity
	}

	if o.ActualStart != nil {
		r.ActualStart = copyTime(o.ActualStart)
	}
	if o.ActualEnd != nil {
		r.ActualEnd = copyTime(o.ActualEnd)
	}
	if o.ConsumableQuantity != nil {
		r.ConsumableQuantity = *o.ConsumableQuantity
	}

	switch {
	case o.TotalCost != nil:
		cost := *o.TotalCost
		r.TotalCost = &cost
	case o.Recalculate && equipment != nil && r.ActualStart != nil && r.ActualEnd != nil:
		cost := equipment.Cost(*r.ActualStart, *r.ActualEnd, r.ConsumableQuantity)
		r.TotalCost = &cost
	}
	return nil
}

// SetStatus admin override of the status, no transition rules apply
func (r *Reservation) SetStatus(status ReservationStatus) {
	r.Status = status
}

// Clone returns a deep copy
func (r *Reservation) Clone() *Reservation {
	c := *r
	c.ActualStart = copyTime(r.ActualStart)
	c.ActualEnd = copyTime(r.ActualEnd)
	if r.TotalCost != nil {
		cost := *r.TotalCost
		c.TotalCost = &cost
	}
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
