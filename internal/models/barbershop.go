package models

import "time"

type Barbershop struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"size:100;not null" json:"name"`
	Location string  `gorm:"size:255" json:"location"`
	Rating   float64 `json:"rating"`
	Reviews  int     `json:"reviews"`
	Price    float64 `json:"price"`
	Emoji    string  `gorm:"size:16" json:"emoji"`

	Services     []Service    `gorm:"foreignKey:BarbershopID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"services"`
	WorkingHours WorkingHours `gorm:"embedded;embeddedPrefix:working_" json:"working_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FindService returns the service with the given id, which is only unique
// inside one barbershop.
func (b *Barbershop) FindService(id uint) (*Service, bool) {
	for i := range b.Services {
		if b.Services[i].ID == id {
			return &b.Services[i], true
		}
	}
	return nil, false
}
