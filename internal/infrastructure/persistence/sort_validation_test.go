package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	cases := map[string]string{
		"":                         "DESC",
		"asc":                      "ASC",
		"  Asc ":                   "ASC",
		"desc":                     "DESC",
		"ascending":                "DESC",
		"ASC; DROP TABLE stocks;--": "DESC",
	}
	for in, want := range cases {
		assert.Equal(t, want, ValidateSortOrder(in), "input %q", in)
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  string
	}{
		{"empty falls back", "", "sku"},
		{"whitelisted column", "sale_price", "sale_price"},
		{"common column", "created_at", "created_at"},
		{"trimmed", "  name ", "name"},
		{"case sensitive", "NAME", "sku"},
		{"derived fields are not columns", "profit_margin", "sku"},
		{"unknown column", "password_hash", "sku"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateSortField(tt.field, ProductSortFields, "sku"))
		})
	}
}

func TestSortFieldsWhitelists(t *testing.T) {
	expect := map[string]struct {
		fields map[string]bool
		has    []string
	}{
		"companies":           {CompanySortFields, []string{"code", "name"}},
		"users":               {UserSortFields, []string{"username", "email"}},
		"products":            {ProductSortFields, []string{"sku", "sale_price"}},
		"warehouses":          {WarehouseSortFields, []string{"code", "is_active"}},
		"locations":           {LocationSortFields, []string{"code"}},
		"stocks":              {StockSortFields, []string{"quantity"}},
		"transactions":        {InventoryTransactionSortFields, []string{"type"}},
		"suppliers":           {SupplierSortFields, []string{"code", "name"}},
		"supplier categories": {SupplierCategorySortFields, []string{"code"}},
		"purchase orders":     {PurchaseOrderSortFields, []string{"number", "order_date", "total"}},
		"goods receipts":      {GoodsReceiptSortFields, []string{"number", "receipt_date"}},
		"customer groups":     {CustomerGroupSortFields, []string{"discount_rate"}},
		"customers":           {CustomerSortFields, []string{"credit_limit"}},
		"sales orders":        {SalesOrderSortFields, []string{"number", "status"}},
		"invoices":            {InvoiceSortFields, []string{"due_date", "total"}},
		"departments":         {DepartmentSortFields, []string{"code"}},
		"employees":           {EmployeeSortFields, []string{"last_name", "hire_date"}},
		"categories":          {CategorySortFields, []string{"code"}},
		"brands":              {BrandSortFields, []string{"name"}},
	}
	for name, e := range expect {
		for _, f := range append([]string{"id", "created_at", "updated_at"}, e.has...) {
			assert.True(t, e.fields[f], "%s should allow ordering by %s", name, f)
		}
		assert.False(t, e.fields["tenant_id"], "%s must not order by tenant_id", name)
	}
}

func TestSortFieldRejectsInjection(t *testing.T) {
	payloads := []string{
		"number; DROP TABLE purchase_orders;--",
		"number' OR '1'='1",
		"number UNION SELECT password_hash FROM users",
		"(SELECT 1)",
		"number\n; DELETE FROM stocks",
		"total, number",
	}
	for _, p := range payloads {
		assert.Equal(t, "number", ValidateSortField(p, PurchaseOrderSortFields, "number"), "payload %q", p)
		assert.Equal(t, "DESC", ValidateSortOrder(p), "payload %q", p)
	}
}
