package handler

import (
	"net/http"

	"exchange_back/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListPlans(c *gin.Context) {
	plans, err := h.service.Plans.ListPlans(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": plans})
}

func (h *Handler) GetPlan(c *gin.Context) {
	plan, err := h.service.Plans.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": plan})
}

func (h *Handler) CreatePlan(c *gin.Context) {
	var input models.PlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	plan, err := h.service.Plans.CreatePlan(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": plan})
}

func (h *Handler) UpdatePlan(c *gin.Context) {
	var input models.PlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	plan, err := h.service.Plans.UpdatePlan(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": plan})
}

func (h *Handler) DeletePlan(c *gin.Context) {
	if err := h.service.Plans.DeletePlan(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListSignals(c *gin.Context) {
	signals, err := h.service.Signals.ListSignals(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": signals})
}

func (h *Handler) GetSignal(c *gin.Context) {
	signal, err := h.service.Signals.GetSignal(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": signal})
}

func (h *Handler) CreateSignal(c *gin.Context) {
	var input models.SignalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	signal, err := h.service.Signals.CreateSignal(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": signal})
}

func (h *Handler) UpdateSignal(c *gin.Context) {
	var input models.SignalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	signal, err := h.service.Signals.UpdateSignal(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": signal})
}

func (h *Handler) DeleteSignal(c *gin.Context) {
	if err := h.service.Signals.DeleteSignal(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListEnabledStakes(c *gin.Context) {
	h.listStakes(c, true)
}

func (h *Handler) ListAllStakes(c *gin.Context) {
	h.listStakes(c, false)
}

func (h *Handler) listStakes(c *gin.Context, enabledOnly bool) {
	stakes, err := h.service.Stakes.ListStakes(c.Request.Context(), enabledOnly)
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": stakes})
}

func (h *Handler) GetStake(c *gin.Context) {
	stake, err := h.service.Stakes.GetStake(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": stake})
}

func (h *Handler) CreateStake(c *gin.Context) {
	var input models.StakingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	stake, err := h.service.Stakes.CreateStake(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": stake})
}

func (h *Handler) UpdateStake(c *gin.Context) {
	var input models.StakingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	stake, err := h.service.Stakes.UpdateStake(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": stake})
}

func (h *Handler) DeleteStake(c *gin.Context) {
	if err := h.service.Stakes.DeleteStake(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListEnabledCopyTraders(c *gin.Context) {
	h.listCopyTraders(c, true)
}

func (h *Handler) ListAllCopyTraders(c *gin.Context) {
	h.listCopyTraders(c, false)
}

func (h *Handler) listCopyTraders(c *gin.Context, enabledOnly bool) {
	traders, err := h.service.CopyTraders.ListCopyTraders(c.Request.Context(), enabledOnly)
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": traders})
}

func (h *Handler) GetCopyTrader(c *gin.Context) {
	trader, err := h.service.CopyTraders.GetCopyTrader(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": trader})
}

func (h *Handler) CreateCopyTrader(c *gin.Context) {
	var input models.CopyTraderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	trader, err := h.service.CopyTraders.CreateCopyTrader(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": trader})
}

func (h *Handler) UpdateCopyTrader(c *gin.Context) {
	var input models.CopyTraderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	trader, err := h.service.CopyTraders.UpdateCopyTrader(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	wrapOkJSON(c, map[string]interface{}{"data": trader})
}

func (h *Handler) DeleteCopyTrader(c *gin.Context) {
	if err := h.service.CopyTraders.DeleteCopyTrader(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
