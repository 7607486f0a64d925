package handlers

import (
	"github.com/sseleimend/e-commerce/internal/models"
	"github.com/sseleimend/e-commerce/internal/services"
	"github.com/sseleimend/e-commerce/internal/utils"
	"github.com/sseleimend/e-commerce/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CheckoutHandler struct {
	checkoutService services.CheckoutService
	productService  services.ProductService
}

func NewCheckoutHandler(checkoutService services.CheckoutService, productService services.ProductService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		productService:  productService,
	}
}

// CreateCheckoutSession opens a hosted payment session for the caller's cart
func (h *CheckoutHandler) CreateCheckoutSession(c *gin.Context) {
	var request models.CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateCreateCheckoutSession(&request); errs.HasErrors() {
		utils.ValidationErrorResponse(c, errs.ToMap())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := h.resolveLineItems(c, &request)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response, err := h.checkoutService.CreateCheckoutSession(c.Request.Context(), userID, items, request.CouponCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Checkout session created", response)
}

// ConfirmCheckout materializes the order once the payment processor reports
// the session as paid
func (h *CheckoutHandler) ConfirmCheckout(c *gin.Context) {
	var request models.ConfirmCheckoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.checkoutService.ConfirmCheckout(c.Request.Context(), request.SessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Payment successful", response)
}

// resolveLineItems looks up each requested product and builds line items
// with the catalog's unit price. Client-submitted prices are never used, so
// a tampered request cannot change what the session charges.
func (h *CheckoutHandler) resolveLineItems(c *gin.Context, request *models.CreateCheckoutSessionRequest) ([]models.CheckoutItem, error) {
	ids := make([]primitive.ObjectID, 0, len(request.Products))
	for _, product := range request.Products {
		id, err := primitive.ObjectIDFromHex(product.ID)
		if err != nil {
			return nil, services.ErrInvalidInput
		}
		ids = append(ids, id)
	}

	products, err := h.productService.GetProductsByIDs(c.Request.Context(), ids)
	if err != nil {
		return nil, err
	}

	catalog := make(map[primitive.ObjectID]*models.Product, len(products))
	for _, product := range products {
		catalog[product.ID] = product
	}

	items := make([]models.CheckoutItem, 0, len(request.Products))
	for i, requested := range request.Products {
		product, ok := catalog[ids[i]]
		if !ok {
			return nil, services.ErrProductNotFound
		}
		items = append(items, models.CheckoutItem{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.Image,
			Price:     product.Price,
			Quantity:  requested.Quantity,
		})
	}

	return items, nil
}
