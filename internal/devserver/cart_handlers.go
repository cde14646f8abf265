package devserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopd-dev/shopd/internal/models"
)

// CartResponse is the authenticated user's cart
type CartResponse struct {
	ID    int               `json:"id"`
	Items []models.CartItem `json:"items"`
}

// getCart returns the authenticated user's cart
func (s *Server) getCart(c *gin.Context) {
	sessionData, _ := GetSessionData(c)

	var items []models.CartItem
	if err := s.db.Preload("Product").Preload("Product.Category").
		Where("user_id = ?", sessionData.UserID).
		Order("id").Find(&items).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to load cart")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Internal server error"}})
		return
	}

	respondData(c, http.StatusOK, CartResponse{
		ID:    sessionData.UserID,
		Items: items,
	})
}

// addToCart puts a product into the cart. The endpoint takes query
// parameters and an empty body, matching the web client.
func (s *Server) addToCart(c *gin.Context) {
	sessionData, _ := GetSessionData(c)

	productID, err := strconv.Atoi(c.Query("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"details": "Invalid productId"}})
		return
	}
	quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "1"))
	if err != nil || quantity <= 0 {
		quantity = 1
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"details": "Product not found"}})
		return
	}

	// An existing line for the same product accumulates quantity
	var item models.CartItem
	err = s.db.Where("user_id = ? AND product_id = ?", sessionData.UserID, productID).First(&item).Error
	switch {
	case err == nil:
		item.Quantity += quantity
		if err := s.db.Save(&item).Error; err != nil {
			s.logger.Error().Err(err).Msg("Failed to update cart item")
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Failed to update cart"}})
			return
		}
	case err == gorm.ErrRecordNotFound:
		item = models.CartItem{
			UserID:    sessionData.UserID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := s.db.Create(&item).Error; err != nil {
			s.logger.Error().Err(err).Msg("Failed to create cart item")
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Failed to update cart"}})
			return
		}
	default:
		s.logger.Error().Err(err).Msg("Failed to load cart item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Internal server error"}})
		return
	}

	item.Product = product
	respondData(c, http.StatusOK, item)
}

// UpdateCartItemRequest sets a cart line's quantity
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// updateCartItem sets the quantity on one cart line
func (s *Server) updateCartItem(c *gin.Context) {
	sessionData, _ := GetSessionData(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"details": err.Error()}})
		return
	}

	var item models.CartItem
	if err := s.db.Preload("Product").Preload("Product.Category").
		Where("user_id = ?", sessionData.UserID).
		First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"details": "Cart item not found"}})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to load cart item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Internal server error"}})
		return
	}

	item.Quantity = req.Quantity
	if err := s.db.Save(&item).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update cart item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Failed to update cart"}})
		return
	}

	respondData(c, http.StatusOK, item)
}

// removeCartItem deletes one cart line by its item ID
func (s *Server) removeCartItem(c *gin.Context) {
	sessionData, _ := GetSessionData(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	result := s.db.Where("user_id = ?", sessionData.UserID).Delete(&models.CartItem{}, id)
	if result.Error != nil {
		s.logger.Error().Err(result.Error).Msg("Failed to delete cart item")
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Failed to update cart"}})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"details": "Cart item not found"}})
		return
	}

	respondData(c, http.StatusOK, gin.H{"deleted": id})
}
