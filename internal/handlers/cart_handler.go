package handlers

import (
	"github.com/sseleimend/e-commerce/internal/models"
	"github.com/sseleimend/e-commerce/internal/services"
	"github.com/sseleimend/e-commerce/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartHandler struct {
	cartService services.CartService
}

func NewCartHandler(cartService services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// AddToCart adds one unit of a product to the caller's cart
func (h *CartHandler) AddToCart(c *gin.Context) {
	var request models.AddToCartRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	productID, err := primitive.ObjectIDFromHex(request.ProductID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cart, err := h.cartService.AddToCart(c.Request.Context(), userID, productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Product added to cart", cart.Items)
}

// GetCartProducts lists the cart with resolved catalog products
func (h *CartHandler) GetCartProducts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	products, err := h.cartService.GetCartProducts(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Cart retrieved", products)
}

// RemoveFromCart removes a product from the cart, or clears it entirely
// when no product ID is supplied
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	var request struct {
		ProductID string `json:"product_id"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	productID := primitive.NilObjectID
	if request.ProductID != "" {
		var err error
		productID, err = primitive.ObjectIDFromHex(request.ProductID)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid product ID")
			return
		}
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cart, err := h.cartService.RemoveFromCart(c.Request.Context(), userID, productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Products removed from cart", cart.Items)
}

// UpdateQuantity sets a cart item's quantity; zero removes the item
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID")
		return
	}

	var request models.UpdateCartQuantityRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cart, err := h.cartService.UpdateQuantity(c.Request.Context(), userID, productID, request.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Cart item quantity updated", cart.Items)
}
