package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mindcare-social/apps/mood-service/model"
	"mindcare-social/apps/mood-service/service"
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
		api.POST("/mood", h.RecordMood)    // 记录心情
		api.GET("/mood", h.GetMoodSummary) // 查询心情记录和连续天数
	}
}

// RecordMoodRequest 记录心情请求
type RecordMoodRequest struct {
	MoodValue        int      `json:"mood_value" binding:"required"`
	Notes            string   `json:"notes"`
	Emotions         []string `json:"emotions"`
	Triggers         []string `json:"triggers"`
	CopingStrategies []string `json:"coping_strategies"`
	Energy           int      `json:"energy"`
	Sleep            float64  `json:"sleep"`
	Stress           int      `json:"stress"`
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

// RecordMood 记录当日心情
func (h *HTTPHandler) RecordMood(c *gin.Context) {
	var req RecordMoodRequest
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

	// 未提供的等级字段取中间值
	entry := &model.MoodEntry{
		MoodValue:        req.MoodValue,
		Notes:            req.Notes,
		Emotions:         req.Emotions,
		Triggers:         req.Triggers,
		CopingStrategies: req.CopingStrategies,
		Energy:           req.Energy,
		Sleep:            req.Sleep,
		Stress:           req.Stress,
	}
	if entry.Energy == 0 {
		entry.Energy = 3
	}
	if entry.Stress == 0 {
		entry.Stress = 3
	}
	if entry.Sleep == 0 {
		entry.Sleep = 8
	}

	saved, err := h.svc.RecordMood(c.Request.Context(), userID, entry)
	if err != nil {
		h.logger.Error(c.Request.Context(), "Failed to record mood",
			logger.F("error", err.Error()),
			logger.F("userID", userID))
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "记录成功",
		"data":    saved,
	})
}

// GetMoodSummary 查询心情记录和连续天数
func (h *HTTPHandler) GetMoodSummary(c *gin.Context) {
	userID := h.currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "未认证",
		})
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	summary, err := h.svc.GetMoodSummary(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "查询成功",
		"data":    summary,
	})
}
