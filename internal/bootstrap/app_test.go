package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/erpsuite/backend/internal/infrastructure/config"
	"github.com/erpsuite/backend/internal/infrastructure/persistence"
	"github.com/erpsuite/backend/internal/infrastructure/telemetry"
	"github.com/erpsuite/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	token  string
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "erp-test", Env: "test"},
		JWT: config.JWTConfig{
			Secret:                 "test-access-secret-at-least-32-characters",
			RefreshSecret:          "test-refresh-secret-at-least-32-characters",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "erp-test",
			MaxRefreshCount:        10,
		},
		Auth:      config.AuthConfig{MaxLoginAttempts: 5, LockDuration: 15 * time.Minute},
		HTTP:      config.HTTPConfig{MaxBodySize: 1 << 20},
		Metrics:   config.MetricsConfig{Enabled: true, Path: "/metrics"},
		Company:   config.CompanyConfig{DefaultCode: "DEFAULT", DefaultName: "Default Company", DefaultCurrency: "USD"},
		Documents: config.DocumentsConfig{DefaultPaymentTermsDays: 30},
	}
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := persistence.NewSQLiteDatabase("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	app, err := New(Options{
		Config:   testConfig(),
		DB:       db.DB,
		Registry: telemetry.NewRegistry(),
		Logger:   zap.NewNop(),
	})
	require.NoError(t, err)
	_, err = app.Companies.EnsureDefault(context.Background())
	require.NoError(t, err)

	return &testServer{t: t, engine: app.Engine}
}

func (s *testServer) do(method, path string, body any) (int, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w.Code, env
}

// mustDo performs the request and decodes data into out when the status matches
func (s *testServer) mustDo(method, path string, body any, status int, out any) envelope {
	s.t.Helper()
	code, env := s.do(method, path, body)
	require.Equal(s.t, status, code, "%s %s: %+v", method, path, env.Error)
	if out != nil {
		require.NoError(s.t, json.Unmarshal(env.Data, out))
	}
	return env
}

type idOnly struct {
	ID string `json:"id"`
}

func (s *testServer) login() {
	s.t.Helper()
	s.loginAs("alice", "")
}

// loginAs registers username into the company with the given code, or the
// default company when code is empty, and keeps its access token
func (s *testServer) loginAs(username, companyCode string) {
	s.t.Helper()
	s.mustDo(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"username":         username,
		"email":            username + "@example.com",
		"password":         "s3cret-pass",
		"password_confirm": "s3cret-pass",
		"company_code":     companyCode,
	}, http.StatusCreated, nil)

	var result struct {
		Tokens struct {
			AccessToken string `json:"access_token"`
		} `json:"tokens"`
	}
	s.mustDo(http.MethodPost, "/api/v1/auth/login", map[string]any{
		"username": username,
		"password": "s3cret-pass",
	}, http.StatusOK, &result)
	require.NotEmpty(s.t, result.Tokens.AccessToken)
	s.token = result.Tokens.AccessToken
}

// session returns a client of the same server without credentials
func (s *testServer) session() *testServer {
	return &testServer{t: s.t, engine: s.engine}
}

func TestAPI_RequiresAuthentication(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/v1/inventory/products", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodeUnauthorized, env.Error.Code)
}

func TestAPI_ProfileAndLogout(t *testing.T) {
	s := newTestServer(t)
	s.login()

	var profile struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	s.mustDo(http.MethodGet, "/api/v1/auth/profile", nil, http.StatusOK, &profile)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "alice@example.com", profile.Email)

	s.mustDo(http.MethodPost, "/api/v1/auth/logout", map[string]any{}, http.StatusOK, nil)

	code, _ := s.do(http.MethodGet, "/api/v1/auth/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAPI_ValidationDetails(t *testing.T) {
	s := newTestServer(t)
	s.login()

	code, env := s.do(http.MethodPost, "/api/v1/inventory/products", map[string]any{"name": "No SKU"})
	require.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)

	fields := make([]string, 0, len(env.Error.Details))
	for _, d := range env.Error.Details {
		fields = append(fields, d.Field)
	}
	assert.Contains(t, fields, "sku")

	code, env = s.do(http.MethodGet, "/api/v1/inventory/stocks?product_id=not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)

	code, env = s.do(http.MethodGet, "/api/v1/inventory/products/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
}

func TestAPI_TrailingSlash(t *testing.T) {
	s := newTestServer(t)
	s.login()

	var wh idOnly
	s.mustDo(http.MethodPost, "/api/v1/inventory/warehouses/", map[string]any{
		"code": "MAIN", "name": "Main warehouse",
	}, http.StatusCreated, &wh)

	s.mustDo(http.MethodGet, "/api/v1/inventory/warehouses/", nil, http.StatusOK, nil)
	env := s.mustDo(http.MethodGet, "/api/v1/inventory/warehouses", nil, http.StatusOK, nil)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(1), env.Meta.Total)

	s.mustDo(http.MethodGet, "/api/v1/inventory/warehouses/"+wh.ID+"/", nil, http.StatusOK, nil)
}

func TestAPI_OrderToInvoiceFlow(t *testing.T) {
	s := newTestServer(t)
	s.login()

	var product, warehouse idOnly
	s.mustDo(http.MethodPost, "/api/v1/inventory/products", map[string]any{
		"sku": "WID-1", "name": "Widget", "sale_price": "25.00", "cost_price": "10.00",
	}, http.StatusCreated, &product)
	s.mustDo(http.MethodPost, "/api/v1/inventory/warehouses", map[string]any{
		"code": "MAIN", "name": "Main warehouse",
	}, http.StatusCreated, &warehouse)

	// stock arrives through a manual IN movement
	s.mustDo(http.MethodPost, "/api/v1/inventory/transactions", map[string]any{
		"product_id": product.ID, "warehouse_id": warehouse.ID, "type": "IN", "quantity": "10",
	}, http.StatusCreated, nil)

	type stockRow struct {
		Quantity decimal.Decimal `json:"quantity"`
	}
	var stocks []stockRow
	s.mustDo(http.MethodGet, "/api/v1/inventory/stocks?product_id="+product.ID, nil, http.StatusOK, &stocks)
	require.Len(t, stocks, 1)
	assert.True(t, decimal.NewFromInt(10).Equal(stocks[0].Quantity), "quantity %s", stocks[0].Quantity)

	// purchasing: order, receive, complete
	var supplier idOnly
	s.mustDo(http.MethodPost, "/api/v1/purchasing/suppliers", map[string]any{
		"code": "ACME", "name": "Acme Supplies",
	}, http.StatusCreated, &supplier)

	var po struct {
		ID    string `json:"id"`
		Lines []struct {
			ID string `json:"id"`
		} `json:"lines"`
	}
	s.mustDo(http.MethodPost, "/api/v1/purchasing/orders", map[string]any{
		"supplier_id":  supplier.ID,
		"warehouse_id": warehouse.ID,
		"lines": []map[string]any{
			{"product_id": product.ID, "quantity": "5", "unit_price": "10.00", "tax_rate": "0"},
		},
	}, http.StatusCreated, &po)
	require.Len(t, po.Lines, 1)

	var receipt idOnly
	s.mustDo(http.MethodPost, "/api/v1/purchasing/receipts", map[string]any{
		"purchase_order_id": po.ID,
		"lines": []map[string]any{
			{"purchase_order_line_id": po.Lines[0].ID, "quantity": "5"},
		},
	}, http.StatusCreated, &receipt)

	var completed struct {
		Status string `json:"status"`
	}
	s.mustDo(http.MethodPost, "/api/v1/purchasing/receipts/"+receipt.ID+"/complete", nil, http.StatusOK, &completed)
	assert.Equal(t, "completed", completed.Status)

	code, env := s.do(http.MethodPost, "/api/v1/purchasing/receipts/"+receipt.ID+"/complete", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodeBusinessRule, env.Error.Code)

	var order struct {
		Status string `json:"status"`
	}
	s.mustDo(http.MethodGet, "/api/v1/purchasing/orders/"+po.ID, nil, http.StatusOK, &order)
	assert.Equal(t, "received", order.Status)

	stocks = nil
	s.mustDo(http.MethodGet, "/api/v1/inventory/stocks?product_id="+product.ID, nil, http.StatusOK, &stocks)
	require.Len(t, stocks, 1)
	assert.True(t, decimal.NewFromInt(15).Equal(stocks[0].Quantity), "quantity %s", stocks[0].Quantity)

	// sales: customer, order, invoice
	var customer idOnly
	s.mustDo(http.MethodPost, "/api/v1/sales/customers", map[string]any{
		"code": "CUST-1", "name": "Globex",
	}, http.StatusCreated, &customer)

	var so struct {
		ID     string `json:"id"`
		Number string `json:"number"`
	}
	s.mustDo(http.MethodPost, "/api/v1/sales/orders", map[string]any{
		"customer_id":  customer.ID,
		"warehouse_id": warehouse.ID,
		"lines": []map[string]any{
			{"product_id": product.ID, "quantity": "2", "tax_rate": "0"},
		},
	}, http.StatusCreated, &so)
	assert.NotEmpty(t, so.Number)

	var invoice struct {
		ID           string `json:"id"`
		SalesOrderID string `json:"sales_order_id"`
		Status       string `json:"status"`
	}
	s.mustDo(http.MethodPost, "/api/v1/finance/invoices", map[string]any{
		"sales_order_id": so.ID,
	}, http.StatusCreated, &invoice)
	assert.Equal(t, so.ID, invoice.SalesOrderID)
	assert.Equal(t, "draft", invoice.Status)

	env = s.mustDo(http.MethodGet, "/api/v1/finance/invoices?sales_order_id="+so.ID, nil, http.StatusOK, nil)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(1), env.Meta.Total)
}

func TestAPI_TenantIsolation(t *testing.T) {
	alice := newTestServer(t)
	alice.login()

	var companies []struct {
		ID   string `json:"id"`
		Code string `json:"code"`
	}
	env := alice.mustDo(http.MethodGet, "/api/v1/core/companies", nil, http.StatusOK, &companies)
	require.Len(t, companies, 1)
	assert.Equal(t, "DEFAULT", companies[0].Code)
	assert.Equal(t, int64(1), env.Meta.Total)
	defaultID := companies[0].ID

	var other idOnly
	alice.mustDo(http.MethodPost, "/api/v1/core/companies", map[string]any{
		"code": "OTHER", "name": "Other Corp",
	}, http.StatusCreated, &other)

	// onboarding a company does not give its creator access to it
	code, env := alice.do(http.MethodGet, "/api/v1/core/companies/"+other.ID, nil)
	assert.Equal(t, http.StatusNotFound, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodeNotFound, env.Error.Code)

	bob := alice.session()
	bob.loginAs("bob", "OTHER")

	code, env = bob.do(http.MethodPatch, "/api/v1/core/companies/"+defaultID, map[string]any{
		"name": "pwned", "is_active": false,
	})
	assert.Equal(t, http.StatusNotFound, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodeNotFound, env.Error.Code)

	var company struct {
		Name     string `json:"name"`
		IsActive bool   `json:"is_active"`
	}
	alice.mustDo(http.MethodGet, "/api/v1/core/companies/"+defaultID, nil, http.StatusOK, &company)
	assert.Equal(t, "Default Company", company.Name)
	assert.True(t, company.IsActive)

	companies = nil
	bob.mustDo(http.MethodGet, "/api/v1/core/companies?search=default", nil, http.StatusOK, &companies)
	assert.Empty(t, companies)
	bob.mustDo(http.MethodPatch, "/api/v1/core/companies/"+other.ID, map[string]any{"name": "Other Holdings"}, http.StatusOK, &company)
	assert.Equal(t, "Other Holdings", company.Name)

	// tenant resources follow the same rule
	var wh idOnly
	alice.mustDo(http.MethodPost, "/api/v1/inventory/warehouses", map[string]any{
		"code": "MAIN", "name": "Main warehouse",
	}, http.StatusCreated, &wh)

	code, _ = bob.do(http.MethodGet, "/api/v1/inventory/warehouses/"+wh.ID, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = bob.do(http.MethodPatch, "/api/v1/inventory/warehouses/"+wh.ID, map[string]any{"name": "Taken"})
	assert.Equal(t, http.StatusNotFound, code)
	env = bob.mustDo(http.MethodGet, "/api/v1/inventory/warehouses", nil, http.StatusOK, nil)
	assert.Equal(t, int64(0), env.Meta.Total)

	// both tenants may use the same code
	bob.mustDo(http.MethodPost, "/api/v1/inventory/warehouses", map[string]any{
		"code": "MAIN", "name": "Other main",
	}, http.StatusCreated, nil)
	env = alice.mustDo(http.MethodGet, "/api/v1/inventory/warehouses", nil, http.StatusOK, nil)
	assert.Equal(t, int64(1), env.Meta.Total)
}

func TestAPI_DocumentAmountsRoundTrip(t *testing.T) {
	s := newTestServer(t)
	s.login()

	var product, warehouse, supplier idOnly
	s.mustDo(http.MethodPost, "/api/v1/inventory/products", map[string]any{
		"sku": "SHIM-1", "name": "Shim", "sale_price": "1.2345", "cost_price": "1",
	}, http.StatusCreated, &product)
	s.mustDo(http.MethodPost, "/api/v1/inventory/warehouses", map[string]any{
		"code": "MAIN", "name": "Main warehouse",
	}, http.StatusCreated, &warehouse)
	s.mustDo(http.MethodPost, "/api/v1/purchasing/suppliers", map[string]any{
		"code": "ACME", "name": "Acme Supplies",
	}, http.StatusCreated, &supplier)

	type amounts struct {
		ID        string          `json:"id"`
		Subtotal  decimal.Decimal `json:"subtotal"`
		TaxAmount decimal.Decimal `json:"tax_amount"`
		Total     decimal.Decimal `json:"total"`
		Lines     []struct {
			Quantity  decimal.Decimal `json:"quantity"`
			TaxAmount decimal.Decimal `json:"tax_amount"`
			Total     decimal.Decimal `json:"total"`
		} `json:"lines"`
	}
	line := map[string]any{"product_id": product.ID, "quantity": "1.2345", "unit_price": "1.2345", "tax_rate": "16"}

	var created, fetched amounts
	s.mustDo(http.MethodPost, "/api/v1/purchasing/orders", map[string]any{
		"supplier_id": supplier.ID, "warehouse_id": warehouse.ID,
		"lines": []map[string]any{line, line},
	}, http.StatusCreated, &created)
	s.mustDo(http.MethodGet, "/api/v1/purchasing/orders/"+created.ID, nil, http.StatusOK, &fetched)

	assert.True(t, decimal.RequireFromString("3.048").Equal(created.Subtotal), "subtotal %s", created.Subtotal)
	assert.True(t, decimal.RequireFromString("3.5356").Equal(created.Total), "total %s", created.Total)
	for _, pair := range [][2]decimal.Decimal{
		{created.Subtotal, fetched.Subtotal},
		{created.TaxAmount, fetched.TaxAmount},
		{created.Total, fetched.Total},
		{created.Lines[0].Quantity, fetched.Lines[0].Quantity},
		{created.Lines[0].TaxAmount, fetched.Lines[0].TaxAmount},
		{created.Lines[1].Total, fetched.Lines[1].Total},
	} {
		assert.True(t, pair[0].Equal(pair[1]), "created %s, fetched %s", pair[0], pair[1])
	}

	var customer idOnly
	s.mustDo(http.MethodPost, "/api/v1/sales/customers", map[string]any{
		"code": "CUST-1", "name": "Globex",
	}, http.StatusCreated, &customer)
	var so, soFetched struct {
		ID             string          `json:"id"`
		Subtotal       decimal.Decimal `json:"subtotal"`
		DiscountAmount decimal.Decimal `json:"discount_amount"`
		Total          decimal.Decimal `json:"total"`
	}
	s.mustDo(http.MethodPost, "/api/v1/sales/orders", map[string]any{
		"customer_id": customer.ID, "warehouse_id": warehouse.ID,
		"lines": []map[string]any{
			{"product_id": product.ID, "quantity": "1.2345", "discount_rate": "7.5", "tax_rate": "16"},
		},
	}, http.StatusCreated, &so)
	s.mustDo(http.MethodGet, "/api/v1/sales/orders/"+so.ID, nil, http.StatusOK, &soFetched)
	assert.True(t, decimal.RequireFromString("1.6353").Equal(so.Total), "total %s", so.Total)
	assert.True(t, so.Subtotal.Equal(soFetched.Subtotal))
	assert.True(t, so.DiscountAmount.Equal(soFetched.DiscountAmount))
	assert.True(t, so.Total.Equal(soFetched.Total))

	// inputs finer than the stored scale are rejected
	for _, bad := range []map[string]any{
		{"product_id": product.ID, "quantity": "0.00001", "unit_price": "1", "tax_rate": "0"},
		{"product_id": product.ID, "quantity": "1", "unit_price": "1.23456789", "tax_rate": "0"},
	} {
		code, env := s.do(http.MethodPost, "/api/v1/purchasing/orders", map[string]any{
			"supplier_id": supplier.ID, "lines": []map[string]any{bad},
		})
		assert.Equal(t, http.StatusBadRequest, code, "line %v", bad)
		require.NotNil(t, env.Error)
		assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)
	}
	code, _ := s.do(http.MethodPost, "/api/v1/inventory/transactions", map[string]any{
		"product_id": product.ID, "warehouse_id": warehouse.ID, "type": "IN", "quantity": "0.00001",
	})
	assert.Equal(t, http.StatusBadRequest, code)
}
