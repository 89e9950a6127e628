package handler

import (
	"net/http"

	"exchange_back/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListVisibleCoins(c *gin.Context) {
	h.listCoins(c, true)
}

func (h *Handler) ListAllCoins(c *gin.Context) {
	h.listCoins(c, false)
}

func (h *Handler) listCoins(c *gin.Context, visibleOnly bool) {
	coins, err := h.service.Coins.ListCoins(c.Request.Context(), visibleOnly)
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": coins})
}

func (h *Handler) GetCoin(c *gin.Context) {
	coin, err := h.service.Coins.GetCoin(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": coin})
}

func (h *Handler) CreateCoin(c *gin.Context) {
	var input models.CoinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	coin, err := h.service.Coins.CreateCoin(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": coin})
}

func (h *Handler) UpdateCoin(c *gin.Context) {
	var input models.CoinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	coin, err := h.service.Coins.UpdateCoin(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": coin})
}

func (h *Handler) DeleteCoin(c *gin.Context) {
	if err := h.service.Coins.DeleteCoin(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SyncRate pulls the current USD price for the coin from CoinGecko.
func (h *Handler) SyncRate(c *gin.Context) {
	coin, err := h.service.Coins.SyncRate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": coin})
}
