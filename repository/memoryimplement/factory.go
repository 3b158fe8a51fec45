package memoryimplement

import (
	"context"
	"sync"

	"github.com/FeifanTech/GEO-Nexus/entity"
	"github.com/FeifanTech/GEO-Nexus/repository"
	"github.com/FeifanTech/GEO-Nexus/repository/factory"
	"github.com/FeifanTech/GEO-Nexus/repository/interfaces"
)

// Factory 内存仓库工厂，测试和无数据库运行时使用
// 所有仓库共享同一份 map 存储
type Factory struct {
	mu          sync.RWMutex
	tasks       map[string]*entity.MonitorTask
	queries     map[string]*entity.SearchQuery
	products    map[string]*entity.Product
	competitors map[string]*entity.Competitor
}

func NewFactory() factory.Factory {
	return &Factory{
		tasks:       make(map[string]*entity.MonitorTask),
		queries:     make(map[string]*entity.SearchQuery),
		products:    make(map[string]*entity.Product),
		competitors: make(map[string]*entity.Competitor),
	}
}

// Session 内存实现没有事务语义，全部为空操作
type Session struct{}

func (s *Session) Begin() error    { return nil }
func (s *Session) Close() error    { return nil }
func (s *Session) Commit() error   { return nil }
func (s *Session) Rollback() error { return nil }

func (f *Factory) NewSession(ctx context.Context) interfaces.Session {
	return &Session{}
}

func (f *Factory) NewMonitorTaskRepository(session interfaces.Session) (repository.MonitorTaskRepository, error) {
	return &MonitorTaskRepository{factory: f}, nil
}

func (f *Factory) NewSearchQueryRepository(session interfaces.Session) (repository.SearchQueryRepository, error) {
	return &SearchQueryRepository{factory: f}, nil
}

func (f *Factory) NewProductRepository(session interfaces.Session) (repository.ProductRepository, error) {
	return &ProductRepository{factory: f}, nil
}

func (f *Factory) NewCompetitorRepository(session interfaces.Session) (repository.CompetitorRepository, error) {
	return &CompetitorRepository{factory: f}, nil
}
