package entity

import "time"

// ActiveStatusID is the status listed back to customers ("예약완료").
const ActiveStatusID int64 = 1

// MaxLocationLength matches the reserve_location column width, in characters.
const MaxLocationLength = 200

// DateLayout is the wire format of service_start_date.
const DateLayout = "2006-01-02"

// Reservation is one housecleaning booking row. It is never updated by this service.
type Reservation struct {
	ID                    int64     `db:"id"`
	UserID                int64     `db:"user_id"`
	ServiceStartingTimeID int64     `db:"service_starting_time_id"`
	ServiceDurationID     int64     `db:"service_duration_id"`
	ReserveCycleID        int64     `db:"reserve_cycle_id"`
	StatusID              int64     `db:"status_id"`
	ServiceStartDate      time.Time `db:"service_start_date"`
	ReserveLocation       string    `db:"reserve_location"`
	HavePet               bool      `db:"have_pet"`
}

// View is a reservation flattened with its joined labels.
type View struct {
	ID               int64  `db:"id" json:"id"`
	Name             string `db:"name" json:"name"`
	ReserveCycle     string `db:"reserve_cycle" json:"reserve_cycle"`
	ServiceDuration  string `db:"service_duration" json:"service_duration"`
	StartingTime     string `db:"starting_time" json:"starting_time"`
	ServiceStartDate string `db:"service_start_date" json:"service_start_date"`
	ReserveLocation  string `db:"reserve_location" json:"reserve_location"`
	HavePet          bool   `db:"have_pet" json:"have_pet"`
	Status           string `db:"status" json:"status"`
}
