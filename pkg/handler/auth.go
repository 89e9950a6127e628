package handler

import (
	"net/http"
	"time"

	"exchange_back/models"
	"exchange_back/pkg/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Register(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.service.Authorization.Register(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "registered, check your email for the verification code",
		"user":    user,
	})
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	var input models.VerifyOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	if err := h.service.Authorization.VerifyOTP(c.Request.Context(), input); err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"message": "email verified"})
}

func (h *Handler) ResendOTP(c *gin.Context) {
	var input models.ResendOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	if err := h.service.Authorization.ResendOTP(c.Request.Context(), input.Email); err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"message": "if the account exists a new code was sent"})
}

func (h *Handler) Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	session, err := h.service.Authorization.Login(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.setSessionCookie(c, session.Token, int(time.Until(session.ExpiresAt).Seconds()))
	wrapOkJSON(c, map[string]interface{}{
		"user":      session.User,
		"expiresAt": session.ExpiresAt,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	wrapOkJSON(c, map[string]interface{}{"message": "logged out"})
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, value, maxAge, "/", h.cfg.CookieDomain, h.cfg.CookieSecure, true)
}
