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

type PurchaseController struct {
	purchaseService service.PurchaseService
}

func NewPurchaseController(purchaseService service.PurchaseService) *PurchaseController {
	return &PurchaseController{
		purchaseService: purchaseService,
	}
}

type PurchaseRequest struct {
	UserID uint `form:"uid" json:"uid" binding:"required"`
	ItemID uint `form:"iid" json:"iid" binding:"required"`
	Amount int  `form:"amount" json:"amount" binding:"required,gt=0"`
}

// Purchase records a single purchase for the authenticated user
// POST /purchase
func (ctrl *PurchaseController) Purchase(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized purchase attempt", nil)
		apperrors.Unauthorized(c, "")
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Warn("Invalid purchase request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Missing uid, iid, or amount.")
		return
	}

	if req.UserID != userID {
		log.Warn("Purchase denied: user mismatch", map[string]interface{}{
			"auth_user_id": userID,
			"request_uid":  req.UserID,
		})
		apperrors.Unauthorized(c, "")
		return
	}

	transaction, err := ctrl.purchaseService.Purchase(userID, req.ItemID, req.Amount)
	if err != nil {
		if errors.Is(err, service.ErrInsufficientStock) {
			log.Warn("Purchase rejected: insufficient stock", map[string]interface{}{
				"user_id": userID,
				"item_id": req.ItemID,
				"amount":  req.Amount,
			})
			apperrors.BadRequest(c, apperrors.StoreInsufficientStock, "Not enough items in stock.")
			return
		}
		if errors.Is(err, service.ErrItemNotFound) {
			log.Warn("Purchase rejected: item not found", map[string]interface{}{
				"user_id": userID,
				"item_id": req.ItemID,
			})
			apperrors.BadRequest(c, apperrors.StoreItemNotFound, "No item found.")
			return
		}
		log.Error("Purchase failed", err, map[string]interface{}{
			"user_id": userID,
			"item_id": req.ItemID,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Purchase completed successfully", map[string]interface{}{
		"user_id":        userID,
		"transaction_id": transaction.ID,
		"ccode":          transaction.CCode,
	})
	c.JSON(http.StatusOK, transaction)
}

// Transactions lists the authenticated user's transactions joined with items
// GET /transactions/:uid
func (ctrl *PurchaseController) Transactions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to view transactions", nil)
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
		log.Warn("Transactions access denied: user mismatch", map[string]interface{}{
			"auth_user_id": userID,
			"request_uid":  uid,
		})
		apperrors.Unauthorized(c, "")
		return
	}

	transactions, err := ctrl.purchaseService.GetUserTransactions(userID)
	if err != nil {
		if errors.Is(err, service.ErrNoTransactions) {
			log.Info("No transactions for user", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.BadRequest(c, apperrors.StoreNoTransactions, "No transactions found.")
			return
		}
		log.Error("Failed to fetch transactions", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// BulkCheckout converts the user's whole cart into transactions under one
// shared confirmation code
// GET /bulk/:uid
func (ctrl *PurchaseController) BulkCheckout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized bulk checkout attempt", nil)
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
		log.Warn("Bulk checkout denied: user mismatch", map[string]interface{}{
			"auth_user_id": userID,
			"request_uid":  uid,
		})
		apperrors.Unauthorized(c, "")
		return
	}

	ccode, err := ctrl.purchaseService.BulkCheckout(userID)
	if err != nil {
		var shortage *service.StockShortageError
		if errors.As(err, &shortage) {
			log.Warn("Bulk checkout rejected: insufficient stock", map[string]interface{}{
				"user_id":     userID,
				"short_items": shortage.ItemNames,
			})
			apperrors.BadRequest(c, apperrors.StoreInsufficientStock, shortage.Error())
			return
		}
		if errors.Is(err, service.ErrEmptyCart) {
			log.Warn("Bulk checkout rejected: cart is empty", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.BadRequest(c, apperrors.StoreEmptyCart, "No items in cart.")
			return
		}
		log.Error("Bulk checkout failed", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Bulk checkout completed successfully", map[string]interface{}{
		"user_id": userID,
		"ccode":   ccode,
	})
	c.JSON(http.StatusOK, gin.H{
		"ccode":   ccode,
		"success": true,
	})
}
