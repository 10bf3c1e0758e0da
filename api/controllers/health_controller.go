/*
 * @module api/controllers/health_controller
 * @description 健康检查控制器，提供服务健康与数据集就绪状态检查
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/requirements.md
 * @stateFlow HTTP请求处理流程
 * @rules 健康检查仅反映进程存活；就绪检查要求数据集快照已完成首次构建
 * @dependencies net/http, service/dataset
 * @refs dev_docs/model.md
 */

package controllers

import (
	"net/http"
	"time"

	"marketing-dashboard-service/service/dataset"

	"github.com/go-chi/render"
)

// HealthController 健康检查控制器
type HealthController struct {
	store *dataset.Store
}

// NewHealthController 创建健康检查控制器实例
func NewHealthController(store *dataset.Store) *HealthController {
	return &HealthController{store: store}
}

// HealthResponse 健康检查响应结构
type HealthResponse struct {
	Status    string     `json:"status" example:"ok"`
	Timestamp time.Time  `json:"timestamp" example:"2024-01-01T00:00:00Z"`
	Version   string     `json:"version" example:"1.0.0"`
	Service   string     `json:"service" example:"marketing-dashboard-service"`
	LoadedAt  *time.Time `json:"loaded_at,omitempty"`
}

// Health 健康检查
// @Summary 健康检查
// @Description 检查服务健康状态
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Service:   "marketing-dashboard-service",
	}

	render.JSON(w, r, response)
}

// Ready 就绪检查
// @Summary 就绪检查
// @Description 检查数据集快照是否已完成首次构建
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /ready [get]
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Service:   "marketing-dashboard-service",
	}

	snap := c.store.Snapshot()
	if snap == nil {
		response.Status = "loading"
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response)
		return
	}
	response.LoadedAt = &snap.LoadedAt

	render.JSON(w, r, response)
}
