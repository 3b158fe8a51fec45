package xormimplement

import (
	"context"
	"fmt"
	"sync"

	"github.com/FeifanTech/GEO-Nexus/config"
	"github.com/FeifanTech/GEO-Nexus/repository"
	"github.com/FeifanTech/GEO-Nexus/repository/factory"
	"github.com/FeifanTech/GEO-Nexus/repository/interfaces"

	"github.com/sirupsen/logrus"
	"xorm.io/xorm"

	_ "github.com/lib/pq"
)

var once sync.Once
var instance *Factory

type Factory struct {
	// 连接 pg
	engine *xorm.Engine
}

// 获取一个factory实例
func GetRepositoryFactoryInstance() factory.Factory {
	once.Do(func() {
		instance = &Factory{
			engine: openDB(
				config.GetInstance().GetString(config.BaseDbXormType),
				config.GetInstance().GetString(config.BaseDbXormHost),
				config.GetInstance().GetString(config.BaseDbXormPort),
				config.GetInstance().GetString(config.BaseDbXormUsername),
				config.GetInstance().GetString(config.BaseDbXormName),
				config.GetInstance().GetString(config.BaseDbXormPassword),
				config.GetInstance().GetBool(config.BaseDbXormShowsql),
			),
		}
	})
	return instance
}

// 设置xorm的连接参数
func openDB(dbType string, host string, port string, userName string, name string, password string, showSql bool) *xorm.Engine {
	//拼接数据库参数
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Shanghai",
		host,
		userName,
		password,
		name,
		port)
	//设置连接参数
	engine, err := xorm.NewEngine(dbType, dsn)
	if err != nil {
		logrus.Errorf("Database connection failed err: %v. Database name: %s", err, name)
		panic(err)
	}
	//是否展示sql文件
	engine.ShowSQL(showSql)
	return engine
}

// 创建一个会话
func (f *Factory) NewSession(ctx context.Context) interfaces.Session {
	return &Session{Session: f.engine.NewSession().Context(ctx)}
}

// NewMonitorTaskRepository 创建监测任务仓库
func (f *Factory) NewMonitorTaskRepository(session interfaces.Session) (repository.MonitorTaskRepository, error) {
	if s, ok := session.(*Session); ok {
		return NewMonitorTaskRepository(s), nil
	}
	return nil, fmt.Errorf("xorm session 结构解析失败")
}

// NewSearchQueryRepository 创建搜索问题仓库
func (f *Factory) NewSearchQueryRepository(session interfaces.Session) (repository.SearchQueryRepository, error) {
	if s, ok := session.(*Session); ok {
		return NewSearchQueryRepository(s), nil
	}
	return nil, fmt.Errorf("xorm session 结构解析失败")
}

// NewProductRepository 创建产品仓库
func (f *Factory) NewProductRepository(session interfaces.Session) (repository.ProductRepository, error) {
	if s, ok := session.(*Session); ok {
		return NewProductRepository(s), nil
	}
	return nil, fmt.Errorf("xorm session 结构解析失败")
}

// NewCompetitorRepository 创建竞品仓库
func (f *Factory) NewCompetitorRepository(session interfaces.Session) (repository.CompetitorRepository, error) {
	if s, ok := session.(*Session); ok {
		return NewCompetitorRepository(s), nil
	}
	return nil, fmt.Errorf("xorm session 结构解析失败")
}
