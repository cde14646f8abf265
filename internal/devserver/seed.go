package devserver

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/shopd-dev/shopd/internal/models"
)

// SeedFile is the YAML catalog seed format
type SeedFile struct {
	Categories []SeedCategory `yaml:"categories"`
}

// SeedCategory is one category and its products
type SeedCategory struct {
	Name     string        `yaml:"name"`
	ImageURL string        `yaml:"imageUrl"`
	Products []SeedProduct `yaml:"products"`
}

// SeedProduct is one product listing
type SeedProduct struct {
	Name          string  `yaml:"name"`
	Description   string  `yaml:"description"`
	Price         float64 `yaml:"price"`
	StockQuantity int     `yaml:"stockQuantity"`
	ImageURL      string  `yaml:"imageUrl"`
}

// SeedFromFile loads a YAML catalog seed. Categories are matched by name, so
// re-running against an already-seeded database is a no-op.
func SeedFromFile(db *gorm.DB, path string, zlog zerolog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	var created int
	for _, sc := range seed.Categories {
		var category models.Category
		err := db.Where("category_name = ?", sc.Name).First(&category).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			category = models.Category{CategoryName: sc.Name, ImageURL: sc.ImageURL}
			if err := db.Create(&category).Error; err != nil {
				return fmt.Errorf("failed to seed category %q: %w", sc.Name, err)
			}
		case err != nil:
			return fmt.Errorf("failed to look up category %q: %w", sc.Name, err)
		}

		for _, sp := range sc.Products {
			var count int64
			if err := db.Model(&models.Product{}).
				Where("name = ? AND category_id = ?", sp.Name, category.CategoryID).
				Count(&count).Error; err != nil {
				return fmt.Errorf("failed to look up product %q: %w", sp.Name, err)
			}
			if count > 0 {
				continue
			}

			product := models.Product{
				Name:          sp.Name,
				Description:   sp.Description,
				Price:         sp.Price,
				StockQuantity: sp.StockQuantity,
				ImageURL:      sp.ImageURL,
				CategoryID:    category.CategoryID,
			}
			if err := db.Create(&product).Error; err != nil {
				return fmt.Errorf("failed to seed product %q: %w", sp.Name, err)
			}
			created++
		}
	}

	zlog.Info().Str("file", path).Int("products_created", created).Msg("Catalog seeded")
	return nil
}
