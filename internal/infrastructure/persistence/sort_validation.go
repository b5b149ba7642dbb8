package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

func withCommon(fields ...string) map[string]bool {
	m := map[string]bool{
		"id":         true,
		"created_at": true,
		"updated_at": true,
	}
	for _, f := range fields {
		m[f] = true
	}
	return m
}

// Allowed order_by values per resource
var (
	CompanySortFields              = withCommon("code", "name", "currency", "is_active")
	UserSortFields                 = withCommon("username", "email", "last_login_at")
	CategorySortFields             = withCommon("code", "name", "parent_id", "is_active")
	BrandSortFields                = withCommon("code", "name", "is_active")
	ProductSortFields              = withCommon("sku", "name", "sale_price", "cost_price", "min_stock", "barcode", "is_active")
	WarehouseSortFields            = withCommon("code", "name", "is_active")
	LocationSortFields             = withCommon("code", "name", "is_active")
	StockSortFields                = withCommon("product_id", "warehouse_id", "quantity", "reserved_quantity")
	InventoryTransactionSortFields = withCommon("type", "quantity", "reference")
	SupplierCategorySortFields     = withCommon("code", "name", "is_active")
	SupplierSortFields             = withCommon("code", "name", "contact_name", "payment_terms_days", "is_active")
	PurchaseOrderSortFields        = withCommon("number", "order_date", "expected_date", "status", "total")
	GoodsReceiptSortFields         = withCommon("number", "receipt_date", "status", "completed_at")
	CustomerGroupSortFields        = withCommon("code", "name", "discount_rate", "is_active")
	CustomerSortFields             = withCommon("code", "name", "credit_limit", "credit_used", "is_active")
	SalesOrderSortFields           = withCommon("number", "order_date", "status", "total")
	InvoiceSortFields              = withCommon("number", "issue_date", "due_date", "status", "total")
	DepartmentSortFields           = withCommon("code", "name", "is_active")
	EmployeeSortFields             = withCommon("code", "first_name", "last_name", "position", "hire_date", "salary", "is_active")
)
