package handler

import (
	"net/http"
	"org_chart_go/internal/service"
	"org_chart_go/pkg/log"
	"strings"

	"github.com/gin-gonic/gin"
)

// OrgHandler 负责组织树查询与调岗接口。
type OrgHandler struct {
	orgService service.OrgService
}

func NewOrgHandler(orgService service.OrgService) *OrgHandler {
	return &OrgHandler{orgService: orgService}
}

// MoveRequest 是调岗和校验接口的请求体。
type MoveRequest struct {
	EmployeeID   int64 `json:"employeeId" binding:"required"`
	SupervisorID int64 `json:"supervisorId" binding:"required"`
}

// RegisterRoutes 把组织树接口挂到 group 下。
func (h *OrgHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/tree", h.GetTree)
	group.GET("/employees/:id", h.GetEmployee)
	group.POST("/moves/validate", h.ValidateMove)
	group.POST("/moves", h.Move)
	group.POST("/undo", h.Undo)
	group.POST("/redo", h.Redo)
	group.GET("/history", h.History)
}

// GetTree 返回完整组织树。
func (h *OrgHandler) GetTree(c *gin.Context) {
	tree, err := h.orgService.GetTree()
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Organization tree retrieved successfully",
		"data":    tree,
	})
}

// GetEmployee 返回某个员工及其下属子树。
func (h *OrgHandler) GetEmployee(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	employee, err := h.orgService.FindEmployee(id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Employee retrieved successfully",
		"data":    employee,
	})
}

// ValidateMove 只校验不执行。被拒绝的调岗同样返回 200，由 valid/reason 说明结果。
func (h *OrgHandler) ValidateMove(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "Invalid request body",
		})
		return
	}

	err := h.orgService.Validate(req.EmployeeID, req.SupervisorID)
	reason := rejectionReason(err)
	if err != nil && reason == "" {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Move validated",
		"data": gin.H{
			"valid":  err == nil,
			"reason": reason,
		},
	})
}

// Move 执行调岗：员工改到新上级之下，其原下属改为向原上级汇报。
func (h *OrgHandler) Move(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "Invalid request body",
		})
		return
	}

	if err := h.orgService.Move(req.EmployeeID, req.SupervisorID); err != nil {
		log.Warnf("OrgHandler.Move: move %d -> %d rejected: %v", req.EmployeeID, req.SupervisorID, err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Employee moved successfully",
	})
}

// Undo 撤销最近一次调岗；没有可撤销的记录时 changed 为 false。
func (h *OrgHandler) Undo(c *gin.Context) {
	changed, err := h.orgService.Undo()
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": historyMessage("Undo", changed),
		"data":    gin.H{"changed": changed},
	})
}

// Redo 重做最近一次被撤销的调岗；没有可重做的记录时 changed 为 false。
func (h *OrgHandler) Redo(c *gin.Context) {
	changed, err := h.orgService.Redo()
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": historyMessage("Redo", changed),
		"data":    gin.H{"changed": changed},
	})
}

// History 返回 undo/redo 两个栈。
func (h *OrgHandler) History(c *gin.Context) {
	history, err := h.orgService.History()
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Move history retrieved successfully",
		"data":    history,
	})
}

func historyMessage(action string, changed bool) string {
	if changed {
		return action + " applied"
	}
	return "Nothing to " + strings.ToLower(action)
}
