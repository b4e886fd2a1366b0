package booking

type BookInput struct {
	TherapistID uint
	PatientID   uint

	Date        string // YYYY-MM-DD
	Time        string // HH:MM
	SessionType string
}

type RescheduleInput struct {
	AppointmentID uint
	TherapistID   uint

	Date string
	Time string
}
