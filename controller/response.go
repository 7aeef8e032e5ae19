package controller

import (
	"errors"
	"go-acquire/game"
	"go-acquire/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func ok(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         msg,
		"data":        data,
	})
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{
		"status_code": status,
		"msg":         msg,
	})
}

// statusOf 把领域错误映射为 HTTP 状态码
func statusOf(err error) int {
	switch {
	case errors.Is(err, game.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrRoomUnknown):
		return http.StatusNotFound
	case errors.Is(err, game.ErrRejected),
		errors.Is(err, service.ErrRoomFull),
		errors.Is(err, service.ErrRoomStarted),
		errors.Is(err, service.ErrNameTaken):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
