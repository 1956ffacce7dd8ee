package model

// CourierProfile lives in the users collection, keyed by the courier's
// user id. Availability entries are free-form windows ("Mon 08:00-17:00").
type CourierProfile struct {
	UserID       string
	Name         string
	Email        string
	Phone        string
	Vehicle      string
	Availability []string
	LicenseURL   string
}
