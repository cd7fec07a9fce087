package dto

// AvailabilityQuery validates the admin availability query string.
type AvailabilityQuery struct {
	Date string `validate:"required,datetime=2006-01-02"`
}

// AvailabilityResponse lists the remaining open slots for one date.
// Recomputed on every query, never cached.
type AvailabilityResponse struct {
	IsBusinessDay bool     `json:"is_business_day"`
	Slots         []string `json:"slots"`
}
