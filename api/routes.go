/*
 * @module api/routes
 * @description API路由配置模块，负责初始化和配置所有HTTP路由
 * @architecture RESTful API架构
 * @documentReference dev_docs/requirements.md
 * @stateFlow 无状态HTTP请求处理
 * @rules 遵循RESTful API设计规范，统一错误处理和响应格式
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/cors, github.com/go-chi/render
 * @refs dev_docs/model.md
 */

package api

import (
	"marketing-dashboard-service/api/controllers"
	"marketing-dashboard-service/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

// InitRoute 初始化所有API路由
func InitRoute(r *chi.Mux) {
	// 基础中间件
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// CORS配置
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 健康检查
	healthController := controllers.NewHealthController(service.GlobalDatasetStore)
	r.Get("/health", healthController.Health)
	r.Get("/ready", healthController.Ready)

	// 过滤元数据
	r.Route("/meta", func(r chi.Router) {
		metaController := controllers.NewMetaController(service.GlobalAnalysisService)
		r.Get("/filters", metaController.GetFilterMeta)
	})

	// 看板聚合
	r.Route("/dashboard", func(r chi.Router) {
		dashboardController := controllers.NewDashboardController(service.GlobalAnalysisService)
		r.Get("/overview", dashboardController.GetOverview)
		r.Get("/states", dashboardController.GetStates)
		r.Get("/monthly", dashboardController.GetMonthly)
		r.Get("/categories", dashboardController.GetCategories)
		r.Get("/satisfaction", dashboardController.GetSatisfaction)
		r.Get("/rfm", dashboardController.GetRFM)
	})

	// CSV导出
	r.Route("/export", func(r chi.Router) {
		exportController := controllers.NewExportController(service.GlobalAnalysisService)
		r.Get("/orders", exportController.ExportOrders)
		r.Get("/items", exportController.ExportItems)
		r.Get("/states", exportController.ExportStates)
		r.Get("/monthly", exportController.ExportMonthly)
		r.Get("/categories", exportController.ExportCategories)
		r.Get("/satisfaction", exportController.ExportSatisfaction)
		r.Get("/rfm", exportController.ExportRFM)
	})
}
