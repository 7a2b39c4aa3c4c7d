package handler

import (
	"strconv"

	"ledger-core/internal/handler/request"
	"ledger-core/internal/handler/response"
	"ledger-core/internal/middleware"
	"ledger-core/internal/service"
	"ledger-core/pkg/errno"
	"ledger-core/pkg/validator"

	"github.com/gin-gonic/gin"
)

type KYCHandler struct {
	kyc *service.KYCService
}

func NewKYCHandler(kyc *service.KYCService) *KYCHandler {
	return &KYCHandler{kyc: kyc}
}

// Status 查询当前用户 KYC 状态
// @Summary KYC 状态
// @Tags KYC
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/kyc/status [get]
func (h *KYCHandler) Status(c *gin.Context) {
	kyc, err := h.kyc.Status(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, kyc)
}

// Submit 提交证件 (multipart: document_type + document)
// @Summary 提交 KYC 证件
// @Tags KYC
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param document_type formData string true "证件类型"
// @Param document formData file true "证件文件 (<=5MB, JPG/PNG/GIF/PDF)"
// @Success 200 {object} response.Response
// @Router /api/v1/kyc/submit [post]
func (h *KYCHandler) Submit(c *gin.Context) {
	docType := c.PostForm("document_type")
	file, err := c.FormFile("document")
	if err != nil {
		response.Error(c, errno.ErrBind.WithMessage("document file is required"))
		return
	}

	kyc, err := h.kyc.Submit(c.Request.Context(), middleware.UserID(c), docType, file)
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, kyc)
}

// List 管理端: 审核列表，?status=pending 过滤待审
func (h *KYCHandler) List(c *gin.Context) {
	list, err := h.kyc.ListSubmitted(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, list)
}

// Review 管理端: 审核
func (h *KYCHandler) Review(c *gin.Context) {
	kycID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, errno.ErrBind.WithMessage("invalid kyc id"))
		return
	}

	var req request.ReviewKYCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	if err := h.kyc.Review(c.Request.Context(), kycID, middleware.UserID(c), req.Status, req.Notes); err != nil {
		response.Error(c, decodeBizError(err))
		return
	}
	response.Success(c, nil)
}
