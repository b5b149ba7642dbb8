package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/erpsuite/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the tables of every persistence model.
// Production schemas come from the SQL migrations; this serves sqlite tests.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}
	return nil
}

// translateError maps GORM sentinel errors onto domain errors
func translateError(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.Errorf(shared.ErrNotFound, "%s not found", entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.Errorf(shared.ErrAlreadyExists, "%s already exists", entity)
	}
	return err
}

// applySearch adds a case-insensitive substring match over columns.
// LOWER + LIKE behaves the same on postgres and sqlite.
func applySearch(query *gorm.DB, search string, columns ...string) *gorm.DB {
	term := strings.TrimSpace(search)
	if term == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + strings.ToLower(term) + "%"
	conds := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		conds[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = pattern
	}
	return query.Where("("+strings.Join(conds, " OR ")+")", args...)
}

// applyOrder orders by a whitelisted column, falling back to defaultField
func applyOrder(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	return query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
}

// applyPagination limits the query to the requested page
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

// nextDocumentNumber returns the next PREFIX-YYYY-NNNNN number of a
// tenant for the table behind model. The sequence widens past 99999, so
// the highest number is the longest one first and then the greatest. The
// unique (tenant_id, number) constraint catches concurrent callers that
// race to the same value.
func nextDocumentNumber(ctx context.Context, db *gorm.DB, model any, tenantID uuid.UUID, kind string) (string, error) {
	prefix := fmt.Sprintf("%s-%d-", kind, time.Now().Year())

	var last []string
	err := db.WithContext(ctx).
		Model(model).
		Where("tenant_id = ? AND number LIKE ?", tenantID, prefix+"%").
		Order("LENGTH(number) DESC, number DESC").
		Limit(1).
		Pluck("number", &last).Error
	if err != nil {
		return "", err
	}

	var next int64 = 1
	if len(last) == 1 {
		parts := strings.Split(last[0], "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				next = num + 1
			}
		}
	}
	return fmt.Sprintf("%s%05d", prefix, next), nil
}
