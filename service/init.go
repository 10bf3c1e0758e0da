/*
 * @module service/init
 * @description 服务初始化模块，负责数据集首次加载、全局服务装配与源监测启动
 * @architecture 分层架构 - 服务层
 * @documentReference dev_docs/model.md
 * @stateFlow 应用启动时执行初始化流程
 * @rules 订单核心数据集加载失败直接终止进程；辅助数据源缺失降级为功能禁用
 * @dependencies service/loader, service/dataset, service/analysis, service/scheduler
 * @refs main.go, api/routes.go
 */

package service

import (
	"log"
	"os"

	"marketing-dashboard-service/logger"
	"marketing-dashboard-service/service/analysis"
	"marketing-dashboard-service/service/dataset"
	"marketing-dashboard-service/service/loader"
	"marketing-dashboard-service/service/scheduler"
)

var (
	GlobalLoaderStore     *loader.Store
	GlobalDatasetStore    *dataset.Store
	GlobalAnalysisService *analysis.Service
	GlobalSourceWatcher   *scheduler.SourceWatcher
)

func init() {
	logger.InitLogger()
	initDataset()
	initServices()
	initWatcher()
}

// initDataset 初始化加载缓存并完成数据集首次构建
func initDataset() {
	dataDir := getEnvWithDefault("DATA_DIR", "data")
	rfmPath := getEnvWithDefault("RFM_PATH", "outputs/rfm_table.csv")

	GlobalLoaderStore = loader.NewStore()
	GlobalDatasetStore = dataset.NewStore(GlobalLoaderStore, dataset.DefaultSourcePaths(dataDir, rfmPath))

	if err := GlobalDatasetStore.Refresh(); err != nil {
		log.Fatalf("数据集初始化失败: %v", err)
	}
	log.Println("数据集初始化完成")
}

// initServices 装配全局服务
func initServices() {
	GlobalAnalysisService = analysis.NewService(GlobalDatasetStore)
}

// initWatcher 启动数据源变化监测
func initWatcher() {
	spec := getEnvWithDefault("WATCH_CRON", "@every 1m")
	GlobalSourceWatcher = scheduler.NewSourceWatcher(GlobalLoaderStore, GlobalDatasetStore)
	if err := GlobalSourceWatcher.Start(spec); err != nil {
		log.Fatalf("数据源监测启动失败: %v", err)
	}
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
