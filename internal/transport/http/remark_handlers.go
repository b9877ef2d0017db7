package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// addRemark handles POST /v1/books/:code/remarks.
func (h *Handler) addRemark(c *gin.Context) {
	var req remarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	created, err := h.catalog.AddRemark(c.Request.Context(), c.Param("code"), req.toInput())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toRemarkResponse(*created))
}

// updateRemark handles PUT /v1/books/:code/remarks/:remarkId.
func (h *Handler) updateRemark(c *gin.Context) {
	var req remarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	updated, err := h.catalog.UpdateRemark(c.Request.Context(),
		c.Param("code"), c.Param("remarkId"), req.toInput())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toRemarkResponse(*updated))
}

// deleteRemark handles DELETE /v1/books/:code/remarks/:remarkId.
func (h *Handler) deleteRemark(c *gin.Context) {
	err := h.catalog.DeleteRemark(c.Request.Context(), c.Param("code"), c.Param("remarkId"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
