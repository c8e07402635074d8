package domain

// ItalianCity is one row of the seeded city lookup table.
type ItalianCity struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	City     string `gorm:"column:city;not null;index:idx_cities_name" json:"city"`
	Province string `gorm:"column:province;not null" json:"province"`
	Region   string `gorm:"column:region;not null" json:"region"`
	Country  string `gorm:"column:country;default:Italy" json:"country"`
}

func (ItalianCity) TableName() string { return "italian_cities" }
