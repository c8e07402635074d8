package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/oriently/oriently-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.QuizSubmission{},
		&types.ItalianCity{},
	)
}

// SeedCities inserts the static Italian city list when the table is empty.
// Returns the number of rows inserted.
func SeedCities(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&types.ItalianCity{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count cities: %w", err)
	}
	if count > 0 {
		return 0, nil
	}
	cities := seedCityRows()
	if err := db.Create(&cities).Error; err != nil {
		return 0, fmt.Errorf("seed cities: %w", err)
	}
	return len(cities), nil
}

func seedCityRows() []types.ItalianCity {
	rows := [][3]string{
		{"Milano", "MI", "Lombardia"},
		{"Roma", "RM", "Lazio"},
		{"Napoli", "NA", "Campania"},
		{"Torino", "TO", "Piemonte"},
		{"Palermo", "PA", "Sicilia"},
		{"Genova", "GE", "Liguria"},
		{"Bologna", "BO", "Emilia-Romagna"},
		{"Firenze", "FI", "Toscana"},
		{"Bari", "BA", "Puglia"},
		{"Catania", "CT", "Sicilia"},
		{"Venezia", "VE", "Veneto"},
		{"Verona", "VR", "Veneto"},
		{"Messina", "ME", "Sicilia"},
		{"Padova", "PD", "Veneto"},
		{"Trieste", "TS", "Friuli-Venezia Giulia"},
		{"Taranto", "TA", "Puglia"},
		{"Brescia", "BS", "Lombardia"},
		{"Reggio Calabria", "RC", "Calabria"},
		{"Modena", "MO", "Emilia-Romagna"},
		{"Prato", "PO", "Toscana"},
	}
	out := make([]types.ItalianCity, 0, len(rows))
	for _, r := range rows {
		out = append(out, types.ItalianCity{
			City:     r[0],
			Province: r[1],
			Region:   r[2],
			Country:  "Italy",
		})
	}
	return out
}
