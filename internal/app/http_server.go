package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ecom/internal/domain"
	"github.com/vladislavdragonenkov/ecom/internal/service/order"
)

// apiServer — HTTP JSON API поверх сервисного слоя.
type apiServer struct {
	deps   *Dependencies
	logger *log.Entry
}

// NewAPIHandler собирает маршруты JSON API.
func NewAPIHandler(deps *Dependencies, logger *log.Entry) http.Handler {
	if logger == nil {
		logger = log.WithField("component", "http")
	}
	s := &apiServer{deps: deps, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/customers", s.createCustomer)
	mux.HandleFunc("GET /api/customers/{id}", s.getCustomer)
	mux.HandleFunc("GET /api/customers/{id}/orders", s.customerOrders)
	mux.HandleFunc("POST /api/products", s.createProduct)
	mux.HandleFunc("POST /api/products/{id}/restock", s.restockProduct)
	mux.HandleFunc("POST /api/suppliers", s.createSupplier)
	mux.HandleFunc("POST /api/promotions", s.createPromotion)
	mux.HandleFunc("POST /api/orders", s.createOrder)
	mux.HandleFunc("GET /api/orders/{id}", s.getOrder)
	mux.HandleFunc("POST /api/orders/{id}/cancel", s.cancelOrder)
	mux.HandleFunc("POST /api/orders/{id}/ship", s.shipOrder)
	mux.HandleFunc("POST /api/orders/{id}/status", s.updateOrderStatus)
	mux.HandleFunc("POST /api/orders/{id}/discount", s.applyDiscount)
	mux.HandleFunc("GET /api/shipments/{tracking}", s.trackShipment)
	return mux
}

type orderItemJSON struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type orderJSON struct {
	ID             int64           `json:"id"`
	CustomerID     string          `json:"customer_id"`
	Items          []orderItemJSON `json:"items"`
	Status         string          `json:"status"`
	TotalPrice     float64         `json:"total_price"`
	ShippingCost   float64         `json:"shipping_cost"`
	TrackingNumber string          `json:"tracking_number,omitempty"`
	PaymentMethod  string          `json:"payment_method,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

func toOrderJSON(o domain.Order) orderJSON {
	items := make([]orderItemJSON, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemJSON{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.Amount(),
		})
	}
	return orderJSON{
		ID:             o.ID,
		CustomerID:     o.CustomerID,
		Items:          items,
		Status:         string(o.Status),
		TotalPrice:     o.TotalPrice.Amount(),
		ShippingCost:   o.ShippingCost.Amount(),
		TrackingNumber: o.TrackingNumber,
		PaymentMethod:  string(o.PaymentMethod),
		CreatedAt:      o.CreatedAt,
	}
}

func (s *apiServer) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Tier    string `json:"tier"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if req.Tier == "" {
		req.Tier = string(domain.TierStandard)
	}
	tier, err := domain.ParseMembershipTier(req.Tier)
	if err != nil {
		s.writeError(w, err)
		return
	}
	customer, err := domain.NewCustomer(req.ID, req.Name, req.Email, tier, req.Phone, req.Address)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.deps.CustomerSvc.AddCustomer(customer); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"id": customer.ID})
}

func (s *apiServer) getCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := s.deps.CustomerSvc.GetCustomer(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":             customer.ID,
		"name":           customer.Name,
		"email":          customer.Email.Value(),
		"tier":           string(customer.Tier),
		"loyalty_points": customer.LoyaltyPoints,
		"order_history":  customer.OrderHistory,
	})
}

func (s *apiServer) customerOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.deps.Orders.GetCustomerOrders(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	result := make([]orderJSON, 0, len(orders))
	for _, o := range orders {
		result = append(result, toOrderJSON(o))
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *apiServer) createProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID         string  `json:"id"`
		Name       string  `json:"name"`
		Price      float64 `json:"price"`
		Quantity   int     `json:"quantity"`
		Category   string  `json:"category"`
		WeightKg   float64 `json:"weight_kg"`
		SupplierID string  `json:"supplier_id"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	product, err := domain.NewProduct(req.ID, req.Name, req.Price, req.Quantity, req.Category, req.WeightKg, req.SupplierID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.deps.Products.Add(product); err != nil {
		s.writeError(w, err)
		return
	}
	s.deps.InventorySvc.LogChange(product.ID, product.QuantityAvailable, domain.InventoryReasonInitialStock)
	s.writeJSON(w, http.StatusCreated, map[string]string{"id": product.ID})
}

func (s *apiServer) restockProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SupplierID string `json:"supplier_id"`
		Quantity   int    `json:"quantity"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	product, err := s.deps.InventorySvc.Restock(r.PathValue("id"), req.SupplierID, req.Quantity)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":        product.ID,
		"available": product.QuantityAvailable,
	})
}

func (s *apiServer) createSupplier(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Email       string  `json:"email"`
		Reliability float64 `json:"reliability"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	supplier, err := domain.NewSupplier(req.ID, req.Name, req.Email, req.Reliability)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.deps.SupplierSvc.AddSupplier(supplier); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"id": supplier.ID})
}

func (s *apiServer) createPromotion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID              string    `json:"id"`
		Code            string    `json:"code"`
		DiscountPercent float64   `json:"discount_percent"`
		MinPurchase     float64   `json:"min_purchase"`
		ValidUntil      time.Time `json:"valid_until"`
		Category        string    `json:"category"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	promo, err := domain.NewPromotion(req.ID, req.Code, req.DiscountPercent, req.MinPurchase, req.ValidUntil, req.Category)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.deps.PromotionSvc.AddPromotion(promo); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"code": promo.Code})
}

func (s *apiServer) createOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID     string `json:"customer_id"`
		Items          []struct {
			ProductID string `json:"product_id"`
			Quantity  int    `json:"quantity"`
		} `json:"items"`
		ShippingMethod string `json:"shipping_method"`
		PromoCode      string `json:"promo_code"`
		Payment        struct {
			Method     string  `json:"method"`
			Valid      bool    `json:"valid"`
			CardNumber string  `json:"card_number"`
			Email      string  `json:"email"`
			Amount     float64 `json:"amount"`
		} `json:"payment"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	method, err := domain.ParseShippingMethod(req.ShippingMethod)
	if err != nil {
		s.writeError(w, err)
		return
	}
	amount, err := domain.NewMoney(req.Payment.Amount)
	if err != nil {
		s.writeError(w, err)
		return
	}

	items := make([]order.ItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, order.ItemRequest{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	created, err := s.deps.Orders.CreateOrder(order.CreateOrderRequest{
		CustomerID:     req.CustomerID,
		Items:          items,
		ShippingMethod: method,
		PromoCode:      req.PromoCode,
		Payment: domain.PaymentInfo{
			Method:     domain.PaymentMethod(req.Payment.Method),
			Valid:      req.Payment.Valid,
			CardNumber: req.Payment.CardNumber,
			Email:      req.Payment.Email,
			Amount:     amount,
		},
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toOrderJSON(created))
}

func (s *apiServer) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := s.orderID(w, r)
	if !ok {
		return
	}
	o, err := s.deps.Orders.GetOrder(orderID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toOrderJSON(o))
}

func (s *apiServer) cancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := s.orderID(w, r)
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.deps.Orders.CancelOrder(orderID, req.Reason); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.OrderStatusCancelled)})
}

func (s *apiServer) shipOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := s.orderID(w, r)
	if !ok {
		return
	}
	var req struct {
		Method string `json:"method"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	method, err := domain.ParseShippingMethod(req.Method)
	if err != nil {
		s.writeError(w, err)
		return
	}
	trackingNumber, err := s.deps.Orders.ShipOrder(orderID, method)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"tracking_number": trackingNumber})
}

func (s *apiServer) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := s.orderID(w, r)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.deps.Orders.UpdateOrderStatus(orderID, status); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}

func (s *apiServer) applyDiscount(w http.ResponseWriter, r *http.Request) {
	orderID, ok := s.orderID(w, r)
	if !ok {
		return
	}
	var req struct {
		Percent float64 `json:"percent"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	o, err := s.deps.Orders.ApplyAdditionalDiscount(orderID, req.Percent)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toOrderJSON(o))
}

func (s *apiServer) trackShipment(w http.ResponseWriter, r *http.Request) {
	shipment, err := s.deps.ShipmentSvc.TrackingInfo(r.PathValue("tracking"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"tracking_number": shipment.TrackingNumber,
		"order_id":        shipment.OrderID,
		"method":          string(shipment.Method),
		"status":          string(shipment.Status),
		"created_at":      shipment.CreatedAt,
	})
}

func (s *apiServer) orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "order id must be an integer"})
		return 0, false
	}
	return id, true
}

func (s *apiServer) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return false
	}
	return true
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Warn("failed to encode response")
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, statusForError(err), map[string]string{"error": err.Error()})
}

// statusForError транслирует доменные ошибки в HTTP-статусы.
func statusForError(err error) int {
	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCustomerSuspended),
		errors.Is(err, domain.ErrOrderNotPending),
		errors.Is(err, domain.ErrShipmentFinal),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrSupplierMismatch),
		errors.Is(err, domain.ErrRefundNotAllowed):
		return http.StatusConflict
	case errors.Is(err, domain.ErrPaymentDeclined),
		errors.Is(err, domain.ErrInsufficientPayment),
		errors.Is(err, domain.ErrUnsupportedPaymentMethod):
		return http.StatusPaymentRequired
	case isValidationError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func isValidationError(err error) bool {
	validation := []error{
		domain.ErrMoneyInvalid, domain.ErrMoneyNegative,
		domain.ErrEmailInvalid, domain.ErrPhoneInvalid, domain.ErrAddressInvalid,
		domain.ErrNameRequired, domain.ErrCodeRequired, domain.ErrDiscountPercentRange,
		domain.ErrQuantityNegative, domain.ErrWeightNegative, domain.ErrLoyaltyPointsNegative,
		domain.ErrReliabilityRange, domain.ErrItemsRequired, domain.ErrItemQtyInvalid,
		domain.ErrUnknownTier, domain.ErrUnknownOrderStatus, domain.ErrUnknownShippingMethod,
	}
	for _, candidate := range validation {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}
