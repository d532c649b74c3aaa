package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusDenied    AppointmentStatus = "denied"
)

// Appointment represents a mobile-service appointment in the record store
type Appointment struct {
	ID              int64
	CustomerName    string
	ServiceAddress  string
	ScheduledStart  time.Time
	ScheduledEnd    time.Time
	DurationMinutes int
	Status          AppointmentStatus

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its time interval
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled && a.Status != StatusDenied
}

// BlocksScheduling returns true if the appointment must behave as hard occupancy
// when computing availability (tentative holds included)
func (a *Appointment) BlocksScheduling() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// AppointmentsFilter фильтр для выборки заявок из хранилища
type AppointmentsFilter struct {
	From     time.Time           // Начало периода (включительно, по пересечению)
	To       time.Time           // Конец периода (исключительно, по пересечению)
	Statuses []AppointmentStatus // Фильтр по статусам (обязательный)
}
