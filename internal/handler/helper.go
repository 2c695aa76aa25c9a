package handler

import (
	"errors"
	"net/http"
	"org_chart_go/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

// mapServiceError 把 Service 层哨兵错误转换为 HTTP 状态码和对外消息。
func mapServiceError(err error) (httpStatus int, message string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid request parameters"
	case errors.Is(err, service.ErrEmployeeNotFound):
		return http.StatusNotFound, "Employee not found"
	case errors.Is(err, service.ErrCycleDetected):
		return http.StatusConflict, "Move would make the employee report to their own subordinate"
	case errors.Is(err, service.ErrNoOpMove):
		return http.StatusConflict, "Employee already reports to this supervisor"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// rejectionReason 给校验接口返回稳定的机器可读原因
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		return "employee_not_found"
	case errors.Is(err, service.ErrCycleDetected):
		return "cycle_detected"
	case errors.Is(err, service.ErrNoOpMove):
		return "no_op_move"
	default:
		return ""
	}
}

// writeError 统一错误响应格式
func writeError(c *gin.Context, err error) {
	status, msg := mapServiceError(err)
	c.JSON(status, gin.H{
		"code":    status,
		"message": msg,
	})
}

// parseIDParam 解析路径参数中的员工 id，非法时直接写 400 响应并返回 false。
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "Invalid employee id",
		})
		return 0, false
	}
	return id, true
}
