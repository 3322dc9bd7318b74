package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mindcare-social/apps/reaction-service/model"
	"mindcare-social/apps/reaction-service/service"
	"mindcare-social/pkg/logger"
)

// HTTPHandler HTTP处理器
type HTTPHandler struct {
	svc    *service.Service
	logger logger.Logger
}

// NewHTTPHandler 创建HTTP处理器
func NewHTTPHandler(svc *service.Service, log logger.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: log,
	}
}

// RegisterRoutes 注册HTTP路由
func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		// 基础反应操作
		api.POST("/reactions", h.AddReaction)      // 添加反应
		api.DELETE("/reactions", h.RemoveReaction) // 删除反应

		// 查询
		api.GET("/reactions/user/:targetType/:targetId", h.GetUserReactions)    // 用户反应状态
		api.GET("/reactions/counts/:targetType/:targetId", h.GetReactionCounts) // 目标反应计数
		api.GET("/reaction-streak", h.GetStreak)                                // 连续记录视图
		api.GET("/achievements", h.ListAchievements)                            // 成就规则表
	}
}

// ReactionRequest 反应请求
type ReactionRequest struct {
	TargetType string `json:"target_type" binding:"required"`
	TargetID   string `json:"target_id" binding:"required"`
	Type       string `json:"type" binding:"required"`
}

// currentUserID 取认证中间件写入的用户ID
func (h *HTTPHandler) currentUserID(c *gin.Context) string {
	if v, exists := c.Get("userID"); exists {
		if userID, ok := v.(string); ok {
			return userID
		}
	}
	return ""
}

// statusFromError 把业务错误映射为HTTP状态码
func statusFromError(err error) int {
	switch {
	case errors.Is(err, model.ErrDuplicateReaction):
		return http.StatusConflict
	case errors.Is(err, model.ErrReactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrConcurrencyConflict):
		return http.StatusServiceUnavailable
	case errors.Is(err, model.ErrInvalidReactionType), errors.Is(err, model.ErrInvalidTargetType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// AddReaction 添加反应
func (h *HTTPHandler) AddReaction(c *gin.Context) {
	var req ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	userID := h.currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "未认证",
		})
		return
	}

	result, err := h.svc.AddReaction(c.Request.Context(), userID, req.TargetType, req.TargetID, req.Type)
	if err != nil {
		h.logger.Error(c.Request.Context(), "Failed to add reaction",
			logger.F("error", err.Error()),
			logger.F("userID", userID),
			logger.F("targetID", req.TargetID))
		c.JSON(statusFromError(err), gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "操作成功",
		"data":    result,
	})
}

// RemoveReaction 删除反应
func (h *HTTPHandler) RemoveReaction(c *gin.Context) {
	var req ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	userID := h.currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "未认证",
		})
		return
	}

	if err := h.svc.RemoveReaction(c.Request.Context(), userID, req.TargetType, req.TargetID, req.Type); err != nil {
		h.logger.Error(c.Request.Context(), "Failed to remove reaction",
			logger.F("error", err.Error()),
			logger.F("userID", userID),
			logger.F("targetID", req.TargetID))
		c.JSON(statusFromError(err), gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "取消成功",
	})
}

// GetUserReactions 查询用户对目标已应用的反应类型
func (h *HTTPHandler) GetUserReactions(c *gin.Context) {
	userID := h.currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "未认证",
		})
		return
	}

	types, err := h.svc.GetUserReactions(c.Request.Context(), userID, c.Param("targetType"), c.Param("targetId"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "查询成功",
		"data":    gin.H{"types": types},
	})
}

// GetReactionCounts 按类型统计目标的反应数量
func (h *HTTPHandler) GetReactionCounts(c *gin.Context) {
	counts, err := h.svc.GetReactionCounts(c.Request.Context(), c.Param("targetType"), c.Param("targetId"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "查询成功",
		"data":    gin.H{"counts": counts},
	})
}

// GetStreak 查询连续记录视图
// 默认查当前用户，userId参数允许查看他人
func (h *HTTPHandler) GetStreak(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		userID = h.currentUserID(c)
	}
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "未认证",
		})
		return
	}

	view, err := h.svc.GetStreak(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "查询成功",
		"data":    view,
	})
}

// ListAchievements 返回成就规则表
func (h *HTTPHandler) ListAchievements(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "查询成功",
		"data":    gin.H{"achievements": h.svc.ListAchievements()},
	})
}
