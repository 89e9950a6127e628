package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"exchange_back/models"
	"exchange_back/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var kycExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".pdf": true}

func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.Authorization.GetUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"user": user})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var input models.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	user, err := h.service.Users.UpdateProfile(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"user": user})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var input models.PasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	if err := h.service.Users.ChangePassword(c.Request.Context(), middleware.UserID(c), input); err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"message": "password updated"})
}

// SubmitKyc takes a multipart form with the document scan in "document".
func (h *Handler) SubmitKyc(c *gin.Context) {
	var input models.KycInput
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err)
		return
	}

	file, err := c.FormFile("document")
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Validation failed",
			models.FieldError{Field: "document", Message: "document is required"})
		return
	}
	if file.Size > h.cfg.MaxUploadBytes {
		newErrorResponse(c, http.StatusBadRequest, "Validation failed",
			models.FieldError{Field: "document", Message: fmt.Sprintf("document must be at most %d bytes", h.cfg.MaxUploadBytes)})
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !kycExtensions[ext] {
		newErrorResponse(c, http.StatusBadRequest, "Validation failed",
			models.FieldError{Field: "document", Message: "document must be a jpg, png or pdf file"})
		return
	}

	userID := middleware.UserID(c)
	prev, err := h.service.Authorization.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	name := userID + "-" + uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, h.kycPath(name)); err != nil {
		h.fail(c, err)
		return
	}

	user, err := h.service.Users.SubmitKyc(c.Request.Context(), userID, input, name)
	if err != nil {
		h.removeKycDocument(name)
		h.fail(c, err)
		return
	}
	if prev.KycDocument != "" && prev.KycDocument != name {
		h.removeKycDocument(prev.KycDocument)
	}
	wrapOkJSON(c, map[string]interface{}{"user": user})
}

func (h *Handler) kycPath(name string) string {
	return filepath.Join(h.cfg.UploadDir, "kyc", filepath.Base(name))
}

func (h *Handler) removeKycDocument(name string) {
	if err := os.Remove(h.kycPath(name)); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).WithField("document", name).Warn("kyc document not removed")
	}
}

func (h *Handler) GetBalances(c *gin.Context) {
	balances, err := h.service.Balances.ListBalances(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": balances})
}

func (h *Handler) GetTransactions(c *gin.Context) {
	txs, err := h.service.Transactions.ListTransactions(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": txs})
}

func (h *Handler) Deposit(c *gin.Context) {
	var input models.DepositInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	tx, err := h.service.Transactions.Deposit(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": tx})
}

func (h *Handler) Withdraw(c *gin.Context) {
	var input models.WithdrawInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	tx, err := h.service.Transactions.Withdraw(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": tx})
}

func (h *Handler) Swap(c *gin.Context) {
	var input models.SwapInput
	if err := c.ShouldBindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.service.Swapper.Swap(c.Request.Context(), middleware.UserID(c), middleware.UserEmail(c), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{
		"message":     "swap completed",
		"fromBalance": res.FromBalance,
		"toBalance":   res.ToBalance,
	})
}
