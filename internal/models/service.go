package models

// Service is keyed by (BarbershopID, ID); Position keeps the catalog order.
type Service struct {
	BarbershopID uint `gorm:"primaryKey;autoIncrement:false" json:"-"`
	ID           uint `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Position     int  `gorm:"not null;default:0" json:"-"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`
}

type WorkingHours struct {
	Start       string `gorm:"size:5" json:"start"`
	End         string `gorm:"size:5" json:"end"`
	IntervalMin int    `json:"interval"`
}
