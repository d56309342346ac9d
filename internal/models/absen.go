package models

// Absen is one attendance record of an employee: the day, clock-in and
// clock-out times (HH:MM), and an optional note.
type Absen struct {
	ID         uint   `json:"id"`
	Tanggal    string `json:"tanggal"` // YYYY-MM-DD
	JamMasuk   string `json:"jamMasuk"`
	JamPulang  string `json:"jamPulang,omitempty"`
	Keterangan string `json:"keterangan,omitempty"`
}

// CheckInRequest clocks an employee in for the day.
type CheckInRequest struct {
	Tanggal    string `json:"tanggal" validate:"required"`
	JamMasuk   string `json:"jamMasuk" validate:"required"`
	Keterangan string `json:"keterangan"`
}

// CheckOutRequest clocks an employee out.
type CheckOutRequest struct {
	JamPulang string `json:"jamPulang" validate:"required"`
}
