package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestAPI(t *testing.T) http.Handler {
	t.Helper()

	deps, err := NewDependencies(context.Background(), DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatalf("NewDependencies() error = %v", err)
	}
	t.Cleanup(deps.Close)

	return NewAPIHandler(deps, nil)
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(dst); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

// seedCatalog регистрирует поставщика, товар и клиента для сценариев заказа.
func seedCatalog(t *testing.T, handler http.Handler) {
	t.Helper()

	w := doJSON(t, handler, http.MethodPost, "/api/suppliers", map[string]interface{}{
		"id":          "sup-1",
		"name":        "Acme Supply",
		"email":       "orders@acme-supply.com",
		"reliability": 0.9,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create supplier: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, handler, http.MethodPost, "/api/products", map[string]interface{}{
		"id":          "prod-1",
		"name":        "Widget",
		"price":       100.0,
		"quantity":    10,
		"category":    "electronics",
		"weight_kg":   1.0,
		"supplier_id": "sup-1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create product: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, handler, http.MethodPost, "/api/customers", map[string]interface{}{
		"id":      "cust-1",
		"name":    "Alice",
		"email":   "alice@example.com",
		"tier":    "gold",
		"address": "123 Main St, Los Angeles, CA 90001",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create customer: expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func orderPayload() map[string]interface{} {
	return map[string]interface{}{
		"customer_id": "cust-1",
		"items": []map[string]interface{}{
			{"product_id": "prod-1", "quantity": 1},
		},
		"shipping_method": "standard",
		"payment": map[string]interface{}{
			"method":      "credit_card",
			"valid":       true,
			"card_number": "4111111111111111",
			"amount":      200.0,
		},
	}
}

func TestAPI_CreateOrderFlow(t *testing.T) {
	handler := newTestAPI(t)
	seedCatalog(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/api/orders", orderPayload())
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created orderJSON
	decodeBody(t, w, &created)

	if created.ID != 1 {
		t.Errorf("expected order id 1, got %d", created.ID)
	}
	if created.Status != "pending" {
		t.Errorf("expected status pending, got %s", created.Status)
	}
	// GOLD: 100 - 15% = 85, бесплатная доставка, налог CA 7.25%.
	if created.TotalPrice != 91.1625 {
		t.Errorf("expected total 91.1625, got %v", created.TotalPrice)
	}

	w = doJSON(t, handler, http.MethodGet, "/api/orders/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get order: expected 200, got %d", w.Code)
	}

	w = doJSON(t, handler, http.MethodGet, "/api/customers/cust-1/orders", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("customer orders: expected 200, got %d", w.Code)
	}
	var history []orderJSON
	decodeBody(t, w, &history)
	if len(history) != 1 {
		t.Errorf("expected 1 order in history, got %d", len(history))
	}
}

func TestAPI_CancelOrder(t *testing.T) {
	handler := newTestAPI(t)
	seedCatalog(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/api/orders", orderPayload())
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, handler, http.MethodPost, "/api/orders/1/cancel", map[string]string{"reason": "changed my mind"})
	if w.Code != http.StatusOK {
		t.Fatalf("cancel order: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, handler, http.MethodPost, "/api/orders/1/cancel", map[string]string{"reason": "again"})
	if w.Code != http.StatusConflict {
		t.Errorf("second cancel: expected 409, got %d", w.Code)
	}
}

func TestAPI_ShipAndTrack(t *testing.T) {
	handler := newTestAPI(t)
	seedCatalog(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/api/orders", orderPayload())
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, handler, http.MethodPost, "/api/orders/1/ship", map[string]string{"method": "express"})
	if w.Code != http.StatusOK {
		t.Fatalf("ship order: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var shipped struct {
		TrackingNumber string `json:"tracking_number"`
	}
	decodeBody(t, w, &shipped)
	if shipped.TrackingNumber == "" {
		t.Fatal("expected non-empty tracking number")
	}

	w = doJSON(t, handler, http.MethodGet, "/api/shipments/"+shipped.TrackingNumber, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("track shipment: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var tracked struct {
		OrderID int64  `json:"order_id"`
		Status  string `json:"status"`
	}
	decodeBody(t, w, &tracked)
	if tracked.OrderID != 1 {
		t.Errorf("expected order id 1 in tracking info, got %d", tracked.OrderID)
	}
}

func TestAPI_UpdateOrderStatus(t *testing.T) {
	handler := newTestAPI(t)
	seedCatalog(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/api/orders", orderPayload())
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, handler, http.MethodPost, "/api/orders/1/status", map[string]string{"status": "shipped"})
	if w.Code != http.StatusOK {
		t.Fatalf("update status: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, handler, http.MethodGet, "/api/orders/1", nil)
	var got orderJSON
	decodeBody(t, w, &got)
	if got.Status != "shipped" {
		t.Errorf("expected status shipped, got %s", got.Status)
	}
	if got.TrackingNumber == "" {
		t.Error("expected tracking number to be assigned on shipped transition")
	}
}

func TestAPI_ApplyDiscount(t *testing.T) {
	handler := newTestAPI(t)
	seedCatalog(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/api/orders", orderPayload())
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, handler, http.MethodPost, "/api/orders/1/discount", map[string]float64{"percent": 10})
	if w.Code != http.StatusOK {
		t.Fatalf("apply discount: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var discounted orderJSON
	decodeBody(t, w, &discounted)
	if discounted.TotalPrice >= 91.1625 {
		t.Errorf("expected discounted total below 91.1625, got %v", discounted.TotalPrice)
	}

	w = doJSON(t, handler, http.MethodPost, "/api/orders/1/discount", map[string]float64{"percent": 150})
	if w.Code != http.StatusBadRequest {
		t.Errorf("out-of-range discount: expected 400, got %d", w.Code)
	}
}

func TestAPI_PromotionApplied(t *testing.T) {
	handler := newTestAPI(t)
	seedCatalog(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/api/promotions", map[string]interface{}{
		"id":               "promo-1",
		"code":             "SAVE10",
		"discount_percent": 10,
		"min_purchase":     50,
		"valid_until":      time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"category":         "all",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create promotion: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	payload := orderPayload()
	payload["promo_code"] = "SAVE10"

	w = doJSON(t, handler, http.MethodPost, "/api/orders", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created orderJSON
	decodeBody(t, w, &created)
	// 100 -> 85 (gold) -> 76.50 (promo 10%), налог CA 7.25%.
	if created.TotalPrice != 82.04625 {
		t.Errorf("expected total 82.04625, got %v", created.TotalPrice)
	}
}

func TestAPI_Restock(t *testing.T) {
	handler := newTestAPI(t)
	seedCatalog(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/api/products/prod-1/restock", map[string]interface{}{
		"supplier_id": "sup-1",
		"quantity":    5,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("restock: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var restocked struct {
		Available int `json:"available"`
	}
	decodeBody(t, w, &restocked)
	if restocked.Available != 15 {
		t.Errorf("expected 15 available after restock, got %d", restocked.Available)
	}

	w = doJSON(t, handler, http.MethodPost, "/api/products/prod-1/restock", map[string]interface{}{
		"supplier_id": "sup-unknown",
		"quantity":    5,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("restock with unknown supplier: expected 404, got %d", w.Code)
	}
}

func TestAPI_ErrorStatuses(t *testing.T) {
	handler := newTestAPI(t)
	seedCatalog(t, handler)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{
			name:   "unknown order",
			method: http.MethodGet,
			path:   "/api/orders/999",
			want:   http.StatusNotFound,
		},
		{
			name:   "non-numeric order id",
			method: http.MethodGet,
			path:   "/api/orders/abc",
			want:   http.StatusBadRequest,
		},
		{
			name:   "unknown customer",
			method: http.MethodGet,
			path:   "/api/customers/ghost",
			want:   http.StatusNotFound,
		},
		{
			name:   "invalid customer email",
			method: http.MethodPost,
			path:   "/api/customers",
			body: map[string]interface{}{
				"id":      "cust-2",
				"name":    "Bob",
				"email":   "not-an-email",
				"address": "742 Evergreen Terrace, Springfield",
			},
			want: http.StatusBadRequest,
		},
		{
			name:   "unknown shipping method",
			method: http.MethodPost,
			path:   "/api/orders",
			body: func() map[string]interface{} {
				payload := orderPayload()
				payload["shipping_method"] = "teleport"
				return payload
			}(),
			want: http.StatusBadRequest,
		},
		{
			name:   "declined payment",
			method: http.MethodPost,
			path:   "/api/orders",
			body: func() map[string]interface{} {
				payload := orderPayload()
				payload["payment"] = map[string]interface{}{
					"method":      "credit_card",
					"valid":       false,
					"card_number": "4111111111111111",
					"amount":      200.0,
				}
				return payload
			}(),
			want: http.StatusPaymentRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, handler, tt.method, tt.path, tt.body)
			if w.Code != tt.want {
				t.Errorf("expected status %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestAPI_DuplicateProduct(t *testing.T) {
	handler := newTestAPI(t)
	seedCatalog(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/api/products", map[string]interface{}{
		"id":          "prod-1",
		"name":        "Widget Again",
		"price":       50.0,
		"quantity":    3,
		"category":    "electronics",
		"weight_kg":   0.5,
		"supplier_id": "sup-1",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate product: expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAPI_SequentialOrderIDs(t *testing.T) {
	handler := newTestAPI(t)
	seedCatalog(t, handler)

	for i := 1; i <= 3; i++ {
		w := doJSON(t, handler, http.MethodPost, "/api/orders", orderPayload())
		if w.Code != http.StatusCreated {
			t.Fatalf("create order %d: expected 201, got %d: %s", i, w.Code, w.Body.String())
		}
		var created orderJSON
		decodeBody(t, w, &created)
		if created.ID != int64(i) {
			t.Errorf("expected order id %d, got %d", i, created.ID)
		}
	}
}
