package repository

import (
	"gorm.io/gorm"
)

// applySort appends an ORDER BY clause only when sortBy appears in the
// resource's allow-list. The interpolated identifier always comes from
// the allow-list map, never from user input; an unrecognized column
// leaves the query unsorted. Direction is DESC only on the exact
// string "desc".
func applySort(query *gorm.DB, allowed map[string]string, sortBy, sortOrder string) *gorm.DB {
	column, ok := allowed[sortBy]
	if !ok {
		return query
	}

	direction := "ASC"
	if sortOrder == "desc" {
		direction = "DESC"
	}
	return query.Order(column + " " + direction)
}
