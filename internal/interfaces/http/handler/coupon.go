package handler

import (
	couponapp "github.com/clinic/backend/internal/application/coupon"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CouponHandler handles coupon API endpoints
type CouponHandler struct {
	BaseHandler
	couponService *couponapp.CouponService
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(couponService *couponapp.CouponService) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
	}
}

// Create handles POST /coupons
func (h *CouponHandler) Create(c *gin.Context) {
	var req couponapp.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	coupon, err := h.couponService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, coupon)
}

// GetByID handles GET /coupons/:id
func (h *CouponHandler) GetByID(c *gin.Context) {
	couponID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID format")
		return
	}

	coupon, err := h.couponService.GetByID(c.Request.Context(), couponID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, coupon)
}

// GetByCode handles GET /coupons/code/:code
func (h *CouponHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "Coupon code is required")
		return
	}

	coupon, err := h.couponService.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, coupon)
}

// List handles GET /coupons
func (h *CouponHandler) List(c *gin.Context) {
	var filter couponapp.CouponListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	coupons, total, err := h.couponService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, coupons, total, filter.Page, filter.PageSize)
}

// Update handles PUT /coupons/:id
func (h *CouponHandler) Update(c *gin.Context) {
	couponID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID format")
		return
	}

	var req couponapp.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	coupon, err := h.couponService.Update(c.Request.Context(), couponID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, coupon)
}

// Activate handles POST /coupons/:id/activate
func (h *CouponHandler) Activate(c *gin.Context) {
	couponID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID format")
		return
	}

	if err := h.couponService.Activate(c.Request.Context(), couponID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Deactivate handles POST /coupons/:id/deactivate
func (h *CouponHandler) Deactivate(c *gin.Context) {
	couponID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID format")
		return
	}

	if err := h.couponService.Deactivate(c.Request.Context(), couponID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete handles DELETE /coupons/:id
func (h *CouponHandler) Delete(c *gin.Context) {
	couponID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID format")
		return
	}

	if err := h.couponService.Delete(c.Request.Context(), couponID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
