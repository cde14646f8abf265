package devserver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopd-dev/shopd/internal/models"
)

const seedYAML = `
categories:
  - name: Shoes
    imageUrl: /images/shoes.png
    products:
      - name: Runner
        description: Lightweight running shoe
        price: 59.99
        stockQuantity: 10
      - name: Boot
        price: 89.99
        stockQuantity: 4
  - name: Hats
    products:
      - name: Cap
        price: 12.50
        stockQuantity: 30
`

func TestSeedFromFile(t *testing.T) {
	srv := newTestServer(t)

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0644))

	require.NoError(t, SeedFromFile(srv.GetDB(), path, zerolog.Nop()))

	var categories []models.Category
	require.NoError(t, srv.GetDB().Find(&categories).Error)
	assert.Len(t, categories, 2)

	var products []models.Product
	require.NoError(t, srv.GetDB().Preload("Category").Find(&products).Error)
	require.Len(t, products, 3)

	// Re-seeding is a no-op
	require.NoError(t, SeedFromFile(srv.GetDB(), path, zerolog.Nop()))
	var count int64
	require.NoError(t, srv.GetDB().Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestSeedFromFileMissing(t *testing.T) {
	srv := newTestServer(t)
	err := SeedFromFile(srv.GetDB(), filepath.Join(t.TempDir(), "missing.yaml"), zerolog.Nop())
	assert.Error(t, err)
}
