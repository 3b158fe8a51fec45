package xormimplement

import (
	"github.com/FeifanTech/GEO-Nexus/model"

	"xorm.io/xorm"
)

// PaginationOrderCondition 查询条件里携带分页和排序时实现该接口
type PaginationOrderCondition interface {
	GetPager() *model.Pager
	GetOrder() *model.Order
}

type pagerOrderCondition struct {
	DefaultOrderField string
	DefaultOrderAsc   bool
}

func WithDefaultOrderField(field string) func(*pagerOrderCondition) {
	return func(condition *pagerOrderCondition) {
		condition.DefaultOrderField = field
	}
}

// pagerOrder 往会话上追加分页和排序，条件没给排序字段时用默认值
func pagerOrder(session xorm.Interface, condition PaginationOrderCondition, opts ...func(*pagerOrderCondition)) {
	defaults := &pagerOrderCondition{}
	for _, opt := range opts {
		opt(defaults)
	}

	if pager := condition.GetPager(); pager != nil && pager.Limit > 0 {
		session.Limit(pager.Limit, pager.Offset)
	}

	orderField := defaults.DefaultOrderField
	orderAsc := defaults.DefaultOrderAsc
	if order := condition.GetOrder(); order != nil && order.OrderBy != "" {
		orderField = order.OrderBy
		orderAsc = order.OrderAsc
	}
	if orderField == "" {
		return
	}
	direction := " desc"
	if orderAsc {
		direction = " asc"
	}
	session.OrderBy(orderField + direction)
}
