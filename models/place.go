package models

// Place is a catalog entry cached from the places provider, so logs can
// render name/address without a network round trip.
type Place struct {
	ID      string  `gorm:"primaryKey" json:"id"` // provider place id
	Name    string  `gorm:"not null" json:"name"`
	Address string  `json:"address,omitempty"` // free-text, provider formatting
	City    string  `json:"city,omitempty"`
	Country string  `json:"country,omitempty"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}
