package factory

import (
	"sync"
	"time"

	"github.com/FeifanTech/GEO-Nexus/config"
	"github.com/FeifanTech/GEO-Nexus/pkg/classifier"
	"github.com/FeifanTech/GEO-Nexus/pkg/clients/dify"
	"github.com/FeifanTech/GEO-Nexus/pkg/clients/redis"
	"github.com/FeifanTech/GEO-Nexus/repository/factory"
	"github.com/FeifanTech/GEO-Nexus/repository/memoryimplement"
	"github.com/FeifanTech/GEO-Nexus/repository/redisimplement"
	"github.com/FeifanTech/GEO-Nexus/repository/xormimplement"
	"github.com/FeifanTech/GEO-Nexus/service/catalog"
	"github.com/FeifanTech/GEO-Nexus/service/monitor"
)

const (
	positionModeNone = "none"

	repositoryDriverMemory = "memory"

	defaultModelDelayMs = 2000
	defaultBatchDelayMs = 3000
)

var instance *Factory
var once sync.Once

// 创建
type Factory struct {
	repositoryFactory factory.Factory

	monitorOnce    sync.Once
	monitorService *monitor.Service

	catalogOnce    sync.Once
	catalogService *catalog.Service
}

// 单例模式，
func GetServiceFactory() *Factory {
	once.Do(func() {
		instance = &Factory{repositoryFactory: newRepositoryFactory()}
	})
	return instance
}

// memory 驱动不依赖数据库，进程重启数据即失
func newRepositoryFactory() factory.Factory {
	if config.GetInstance().GetString(config.BaseDbDriver) == repositoryDriverMemory {
		return memoryimplement.NewFactory()
	}
	return xormimplement.GetRepositoryFactoryInstance()
}

// NewMonitorService 获取监测服务
// 执行注册表在服务内，必须全局唯一
func (f *Factory) NewMonitorService() *monitor.Service {
	f.monitorOnce.Do(func() {
		cfg := config.GetInstance()

		cls := classifier.NewDefault()
		if cfg.GetStringOrDefault(config.MonitorPositionMode, "offset") == positionModeNone {
			cls = classifier.New(classifier.NopEstimator)
		}

		options := monitor.Options{
			ModelDelay: time.Duration(cfg.GetIntOrDefault(config.MonitorModelDelayMs, defaultModelDelayMs)) * time.Millisecond,
			BatchDelay: time.Duration(cfg.GetIntOrDefault(config.MonitorBatchDelayMs, defaultBatchDelayMs)) * time.Millisecond,
		}

		f.monitorService = monitor.NewService(
			f.repositoryFactory,
			redisimplement.NewHistoryRepository(redis.GetInstance().Client),
			dify.GetInstance(),
			cls,
			options,
		)
	})
	return f.monitorService
}

// NewCatalogService 获取品牌资产服务
func (f *Factory) NewCatalogService() *catalog.Service {
	f.catalogOnce.Do(func() {
		f.catalogService = catalog.NewService(f.repositoryFactory)
	})
	return f.catalogService
}
