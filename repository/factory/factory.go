package factory

import (
	"context"

	"github.com/FeifanTech/GEO-Nexus/repository"
	"github.com/FeifanTech/GEO-Nexus/repository/interfaces"
)

type Factory interface {
	NewSession(ctx context.Context) interfaces.Session
	NewMonitorTaskRepository(session interfaces.Session) (repository.MonitorTaskRepository, error)
	NewSearchQueryRepository(session interfaces.Session) (repository.SearchQueryRepository, error)
	NewProductRepository(session interfaces.Session) (repository.ProductRepository, error)
	NewCompetitorRepository(session interfaces.Session) (repository.CompetitorRepository, error)
}
