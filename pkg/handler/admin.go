package handler

import (
	"net/http"
	"path/filepath"

	"exchange_back/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.Users.ListUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": users})
}

func (h *Handler) SetKycStatus(c *gin.Context) {
	var input models.KycStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	user, err := h.service.Users.SetKycStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": user})
}

// GetKycDocument streams the uploaded scan. Documents are never served statically.
func (h *Handler) GetKycDocument(c *gin.Context) {
	user, err := h.service.Authorization.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if user.KycDocument == "" {
		newErrorResponse(c, http.StatusNotFound, "document not found")
		return
	}
	c.File(filepath.Join(h.cfg.UploadDir, "kyc", filepath.Base(user.KycDocument)))
}

func (h *Handler) AdjustBalance(c *gin.Context) {
	var input models.AdjustBalanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	balance, err := h.service.Balances.AdjustBalance(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": balance})
}

func (h *Handler) ListAllTransactions(c *gin.Context) {
	txs, err := h.service.Transactions.ListAllTransactions(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": txs})
}

func (h *Handler) ApproveTransaction(c *gin.Context) {
	tx, err := h.service.Transactions.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": tx})
}

func (h *Handler) RejectTransaction(c *gin.Context) {
	tx, err := h.service.Transactions.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": tx})
}
