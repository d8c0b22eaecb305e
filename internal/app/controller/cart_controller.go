package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jylee/minimart-backend/internal/app/service"
	apperrors "github.com/jylee/minimart-backend/internal/errors"
	"github.com/jylee/minimart-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	UserID uint `form:"uid" json:"uid" binding:"required"`
	ItemID uint `form:"iid" json:"iid" binding:"required"`
}

// AddToCart adds one unit of an item to the user's cart
// POST /addcart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to add to cart", nil)
		apperrors.Unauthorized(c, "")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Missing uid or iid.")
		return
	}

	if req.UserID != userID {
		log.Warn("Cart access denied: user mismatch", map[string]interface{}{
			"auth_user_id": userID,
			"request_uid":  req.UserID,
		})
		apperrors.Unauthorized(c, "")
		return
	}

	err := ctrl.cartService.AddToCart(userID, req.ItemID)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			log.Warn("Item not found for cart", map[string]interface{}{
				"user_id": userID,
				"item_id": req.ItemID,
			})
			apperrors.BadRequest(c, apperrors.StoreItemNotFound, "No item found.")
			return
		}
		log.Error("Failed to add item to cart", err, map[string]interface{}{
			"user_id": userID,
			"item_id": req.ItemID,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Item added to cart successfully", map[string]interface{}{
		"user_id": userID,
		"item_id": req.ItemID,
	})
	c.String(http.StatusOK, "Item added to cart.")
}

// ShowCart returns the user's cart lines joined with their items
// GET /showcart/:uid
func (ctrl *CartController) ShowCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to view cart", nil)
		apperrors.Unauthorized(c, "")
		return
	}

	uidStr := c.Param("uid")
	uid, err := strconv.ParseUint(uidStr, 10, 32)
	if err != nil {
		log.Warn("Invalid user ID format", map[string]interface{}{
			"uid":   uidStr,
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Missing uid.")
		return
	}
	if uint(uid) != userID {
		log.Warn("Cart access denied: user mismatch", map[string]interface{}{
			"auth_user_id": userID,
			"request_uid":  uid,
		})
		apperrors.Unauthorized(c, "")
		return
	}

	cartItems, err := ctrl.cartService.GetUserCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Cart fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(cartItems),
	})
	// An empty cart is a valid, empty response
	c.JSON(http.StatusOK, cartItems)
}
