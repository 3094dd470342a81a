package analytics

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Aggregator provides generic database aggregation helpers over the
// append-only event log and conversation tables.
type Aggregator struct {
	db *gorm.DB
}

// NewAggregator creates a new aggregator
func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// Aggregate performs a generic aggregation query
func (a *Aggregator) Aggregate(query AggregateQuery) ([]map[string]interface{}, error) {
	selectParts := []string{}
	selectParts = append(selectParts, query.GroupBy...)
	for alias, agg := range query.Aggregates {
		selectParts = append(selectParts, fmt.Sprintf("%s AS %s", agg, alias))
	}

	db := a.db.Table(query.Table).Select(strings.Join(selectParts, ", "))

	for condition, value := range query.Filters {
		if strings.Contains(condition, "?") {
			// Parameterized condition (e.g., "outcome IS NOT NULL AND outcome = ?")
			db = db.Where(condition, value)
		} else {
			// Simple equality (e.g., {"company_id": uuid})
			db = db.Where(fmt.Sprintf("%s = ?", condition), value)
		}
	}

	if query.DateRange != nil {
		db = db.Where(fmt.Sprintf("%s BETWEEN ? AND ?", query.DateRange.Field),
			query.DateRange.Start, query.DateRange.End)
	}

	if len(query.GroupBy) > 0 {
		db = db.Group(strings.Join(query.GroupBy, ", "))
	}
	for _, order := range query.OrderBy {
		db = db.Order(order)
	}
	if query.Limit > 0 {
		db = db.Limit(query.Limit)
	}

	var results []map[string]interface{}
	if err := db.Find(&results).Error; err != nil {
		return nil, fmt.Errorf("aggregate query failed: %w", err)
	}
	return results, nil
}

// Count performs a simple COUNT query with filters
func (a *Aggregator) Count(table string, filters map[string]interface{}, dateRange *DateRange) (int64, error) {
	db := a.db.Table(table)

	for condition, value := range filters {
		if strings.Contains(condition, "?") {
			db = db.Where(condition, value)
		} else {
			db = db.Where(fmt.Sprintf("%s = ?", condition), value)
		}
	}
	if dateRange != nil {
		db = db.Where(fmt.Sprintf("%s BETWEEN ? AND ?", dateRange.Field), dateRange.Start, dateRange.End)
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return count, nil
}

// Average performs a simple AVG query, returning 0 on empty sets.
func (a *Aggregator) Average(table, column string, filters map[string]interface{}) (float64, error) {
	results, err := a.Aggregate(AggregateQuery{
		Table:      table,
		Aggregates: map[string]string{"avg": fmt.Sprintf("AVG(%s)", column)},
		Filters:    filters,
	})
	if err != nil {
		return 0, err
	}
	if len(results) == 0 || results[0]["avg"] == nil {
		return 0, nil
	}

	switch v := results[0]["avg"].(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("unexpected avg result type: %T", results[0]["avg"])
	}
}
