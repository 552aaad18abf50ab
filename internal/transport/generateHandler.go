package transport

import (
	"errors"
	"net/http"

	"github.com/ds124wfegd/animegen/internal/entity"
	"github.com/ds124wfegd/animegen/internal/transport/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (h *GenerateHandler) Generate(c *gin.Context) {
	var req entity.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, entity.ErrNoImage) {
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: entity.MsgNoImage})
			return
		}
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result.Response())
}

func (h *GenerateHandler) fail(c *gin.Context, err error) {
	logrus.WithFields(logrus.Fields{
		"request_id": c.GetString(middleware.RequestIDKey),
		"error":      err.Error(),
	}).Error("Error generating anime image")

	c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
		Error:   entity.MsgGenerateFailed,
		Message: entity.MsgServiceDown,
	})
}
