/*
 * @module api/controllers/meta_controller
 * @description 过滤元数据控制器，向前端提供过滤控件的取值范围
 * @architecture MVC架构 - 控制器层
 * @documentReference dev_docs/model.md
 * @stateFlow HTTP请求处理流程
 * @rules 元数据来自当前数据集快照，不受过滤条件影响
 * @dependencies net/http, service/analysis
 * @refs api/routes.go
 */

package controllers

import (
	"net/http"

	"marketing-dashboard-service/service/analysis"

	"github.com/go-chi/render"
)

// MetaController 过滤元数据控制器
type MetaController struct {
	service *analysis.Service
}

// NewMetaController 创建过滤元数据控制器实例
func NewMetaController(service *analysis.Service) *MetaController {
	return &MetaController{service: service}
}

// GetFilterMeta 获取过滤控件元数据
// @Summary 获取过滤控件元数据
// @Description 返回购买时间跨度、可选客户州与可选支付方式
// @Tags 元数据
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /meta/filters [get]
func (c *MetaController) GetFilterMeta(w http.ResponseWriter, r *http.Request) {
	meta, err := c.service.Meta()
	if err != nil {
		render.JSON(w, r, renderServiceError("获取过滤元数据失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("获取过滤元数据成功", meta))
}
