package devserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopd-dev/shopd/internal/models"
)

// CategoryRequest names a category
type CategoryRequest struct {
	CategoryName string `json:"categoryName" binding:"required"`
	ImageURL     string `json:"imageUrl"`
}

// ProductRequest is the create/update payload for a product
type ProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required"`
	StockQuantity int     `json:"stockQuantity"`
	CategoryID    int     `json:"categoryId" binding:"required"`
	ImageURL      string  `json:"imageUrl"`
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"details": "Invalid ID"}})
		return 0, false
	}
	return id, true
}

// listCategories returns all categories. The payload is wrapped twice; the
// web client's category page was built against this shape and unwraps both
// layers, so it stays.
func (s *Server) listCategories(c *gin.Context) {
	var categories []models.Category
	if err := s.db.Order("category_id").Find(&categories).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Internal server error"}})
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"status": http.StatusOK,
		"data":   categories,
	})
}

// createCategory adds a category (admin only)
func (s *Server) createCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"details": err.Error()}})
		return
	}

	category := &models.Category{
		CategoryName: req.CategoryName,
		ImageURL:     req.ImageURL,
	}
	if err := s.db.Create(category).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create category")
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{"details": "Category already exists"}})
		return
	}

	s.logger.Info().Int("category_id", category.CategoryID).Str("name", category.CategoryName).Msg("Category created")

	respondData(c, http.StatusCreated, category)
}

// updateCategory renames a category (admin only)
func (s *Server) updateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"details": err.Error()}})
		return
	}

	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"details": "Category not found"}})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Internal server error"}})
		return
	}

	category.CategoryName = req.CategoryName
	if req.ImageURL != "" {
		category.ImageURL = req.ImageURL
	}
	if err := s.db.Save(&category).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Failed to update category"}})
		return
	}

	respondData(c, http.StatusOK, category)
}

// deleteCategory removes a category (admin only)
func (s *Server) deleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result := s.db.Delete(&models.Category{}, id)
	if result.Error != nil {
		s.logger.Error().Err(result.Error).Msg("Failed to delete category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Failed to delete category"}})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"details": "Category not found"}})
		return
	}

	s.logger.Info().Int("category_id", id).Msg("Category deleted")

	respondData(c, http.StatusOK, gin.H{"deleted": id})
}

// listProducts returns products with their categories. The query string
// narrows and pages the result: categoryId, q (name substring), limit,
// offset.
func (s *Server) listProducts(c *gin.Context) {
	query := s.db.Preload("Category").Order("id")

	if raw := c.Query("categoryId"); raw != "" {
		categoryID, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"details": "Invalid categoryId"}})
			return
		}
		query = query.Where("category_id = ?", categoryID)
	}
	if q := c.Query("q"); q != "" {
		query = query.Where("name LIKE ?", "%"+q+"%")
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"details": "Invalid limit"}})
			return
		}
		query = query.Limit(limit)
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"details": "Invalid offset"}})
			return
		}
		query = query.Offset(offset)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Internal server error"}})
		return
	}

	respondData(c, http.StatusOK, products)
}

// getProduct returns one product by ID
func (s *Server) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var product models.Product
	if err := s.db.Preload("Category").First(&product, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"details": "Product not found"}})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Internal server error"}})
		return
	}

	respondData(c, http.StatusOK, product)
}

// createProduct adds a product (admin only)
func (s *Server) createProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"details": err.Error()}})
		return
	}

	var category models.Category
	if err := s.db.First(&category, req.CategoryID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"details": "Category not found"}})
		return
	}

	product := &models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
		CategoryID:    req.CategoryID,
		Category:      category,
	}
	if err := s.db.Create(product).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Failed to create product"}})
		return
	}

	s.logger.Info().Int("product_id", product.ID).Str("name", product.Name).Msg("Product created")

	respondData(c, http.StatusCreated, product)
}

// updateProduct replaces a product's fields (admin only)
func (s *Server) updateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"details": err.Error()}})
		return
	}

	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"details": "Product not found"}})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Internal server error"}})
		return
	}

	var category models.Category
	if err := s.db.First(&category, req.CategoryID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"details": "Category not found"}})
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.StockQuantity = req.StockQuantity
	product.CategoryID = req.CategoryID
	product.Category = category
	if req.ImageURL != "" {
		product.ImageURL = req.ImageURL
	}
	if err := s.db.Save(&product).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Failed to update product"}})
		return
	}

	respondData(c, http.StatusOK, product)
}

// deleteProduct removes a product (admin only)
func (s *Server) deleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result := s.db.Delete(&models.Product{}, id)
	if result.Error != nil {
		s.logger.Error().Err(result.Error).Msg("Failed to delete product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Failed to delete product"}})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"details": "Product not found"}})
		return
	}

	s.logger.Info().Int("product_id", id).Msg("Product deleted")

	respondData(c, http.StatusOK, gin.H{"deleted": id})
}
