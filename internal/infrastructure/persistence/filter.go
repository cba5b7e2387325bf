package persistence

import (
	"gorm.io/gorm"

	"github.com/retail/backend/internal/domain/shared"
)

// applyFilter applies pagination and ordering to a query. The order
// column is matched against the sortable whitelist so request input
// never reaches the SQL text.
func applyFilter(query *gorm.DB, filter shared.Filter, sortable ...string) *gorm.DB {
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if orderBy := sortColumn(filter.OrderBy, sortable); orderBy != "" {
		dir := " ASC"
		if filter.Desc {
			dir = " DESC"
		}
		query = query.Order(orderBy + dir)
	}
	return query
}

func sortColumn(requested string, sortable []string) string {
	for _, col := range sortable {
		if col == requested {
			return col
		}
	}
	return ""
}
