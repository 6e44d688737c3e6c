package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alex-njugi/talex-app/internal/domain"
	"github.com/alex-njugi/talex-app/internal/events"
	"github.com/alex-njugi/talex-app/internal/repository"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type OrderService struct {
	orders   repository.OrderStore
	products repository.ProductStore
	carts    repository.CartStore
	producer events.Producer
	logger   *zap.Logger
}

func NewOrderService(orders repository.OrderStore, products repository.ProductStore, carts repository.CartStore, producer events.Producer, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		carts:    carts,
		producer: producer,
		logger:   logger,
	}
}

type CheckoutInput struct {
	CartID         string
	Name           string
	Phone          string
	Address        string
	UsePhoneForSTK bool
}

// Checkout turns the cart into an order: validate, snapshot, persist, then
// clear the cart. Any failure before the order is persisted leaves the cart
// untouched, and no partial order is ever written.
func (s *OrderService) Checkout(ctx context.Context, in CheckoutInput, requestID string) (domain.Order, error) {
	cart, err := s.carts.Get(ctx, in.CartID)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		return domain.Order{}, fmt.Errorf("load cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Order{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	address := strings.TrimSpace(in.Address)
	if address == "" {
		return domain.Order{}, &ValidationError{Field: "address", Reason: "must not be empty"}
	}
	phone, err := domain.NormalizePhone(in.Phone)
	if err != nil {
		return domain.Order{}, &ValidationError{Field: "phone", Reason: "not a recognized mobile number"}
	}

	if err := s.checkStock(ctx, cart); err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Name:      name,
		Phone:     phone,
		Address:   address,
		Status:    domain.OrderStatusPending,
		Items:     cart.Snapshot(),
	}
	if in.UsePhoneForSTK {
		order.Payment = &domain.Payment{
			Status: domain.PaymentStatusPending,
			Phone:  phone,
		}
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error("Failed to save order",
			zap.String("order_id", order.ID),
			zap.Error(err))
		return domain.Order{}, err
	}

	s.deductStock(ctx, cart)

	// The order exists; a cart that fails to clear is an annoyance, not a
	// failed checkout.
	if err := s.carts.Delete(ctx, in.CartID); err != nil {
		s.logger.Warn("Failed to clear cart after checkout",
			zap.String("cart_id", in.CartID),
			zap.Error(err))
	}

	if err := s.producer.PublishOrderCreated(events.OrderCreatedEvent{
		EventID:    uuid.New().String(),
		OrderID:    order.ID,
		TotalCents: order.Total(),
		Items:      order.Items,
		Status:     string(order.Status),
		Timestamp:  time.Now(),
		RequestID:  requestID,
	}); err != nil {
		s.logger.Error("Failed to publish event",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}

	s.logger.Info("Order created successfully",
		zap.String("order_id", order.ID),
		zap.Int64("total_cents", order.Total()),
		zap.Int("items", len(order.Items)))

	return order, nil
}

// checkStock rejects lines whose quantity exceeds what the catalog has left.
// A product that vanished from the catalog since it was added is treated the
// same as one that is out of stock.
func (s *OrderService) checkStock(ctx context.Context, cart domain.Cart) error {
	for _, it := range cart.Items {
		p, err := s.products.Get(ctx, it.ProductID)
		if errors.Is(err, repository.ErrProductNotFound) {
			return fmt.Errorf("%w: %q is no longer available", ErrInsufficientStock, it.Title)
		}
		if err != nil {
			return fmt.Errorf("check stock: %w", err)
		}
		if p.Stock < it.Quantity {
			return fmt.Errorf("%w: %q has %d left", ErrInsufficientStock, it.Title, p.Stock)
		}
	}
	return nil
}

// deductStock runs after the order is persisted; a failed decrement is
// logged and reconciled by the back-office, never a failed checkout.
func (s *OrderService) deductStock(ctx context.Context, cart domain.Cart) {
	for _, it := range cart.Items {
		p, err := s.products.Get(ctx, it.ProductID)
		if err != nil {
			s.logger.Warn("Failed to load product for stock deduction",
				zap.String("product_id", it.ProductID),
				zap.Error(err))
			continue
		}
		p.Stock -= it.Quantity
		if p.Stock < 0 {
			p.Stock = 0
		}
		if err := s.products.Update(ctx, p); err != nil {
			s.logger.Warn("Failed to deduct stock",
				zap.String("product_id", it.ProductID),
				zap.Error(err))
		}
	}
}

// Track resolves an order by its exact reference for the customer-facing
// tracking view.
func (s *OrderService) Track(ctx context.Context, id string) (domain.Order, error) {
	return s.orders.Get(ctx, id)
}

// AdminList is the back-office order list: filter, then a fixed-size page.
func (s *OrderService) AdminList(ctx context.Context, f domain.OrderFilter, page, perPage int) ([]domain.Order, int, error) {
	all, err := s.orders.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	filtered := f.Apply(all)
	return domain.Paginate(filtered, page, perPage), len(filtered), nil
}

// SetFulfillmentStatus moves the order along the fulfillment pipeline. The
// transition graph is enforced unless force is set, which is the explicit
// administrator override.
func (s *OrderService) SetFulfillmentStatus(ctx context.Context, id string, to domain.OrderStatus, force bool) (domain.Order, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	from := order.Status
	if from == to {
		return order, nil
	}
	if !force && !from.CanTransition(to) {
		return domain.Order{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
	}

	order.Status = to
	if err := s.orders.Update(ctx, order); err != nil {
		return domain.Order{}, err
	}

	if err := s.producer.PublishOrderStatusChanged(events.OrderStatusChangedEvent{
		EventID:   uuid.New().String(),
		OrderID:   order.ID,
		From:      string(from),
		To:        string(to),
		Forced:    force,
		Timestamp: time.Now(),
	}); err != nil {
		s.logger.Error("Failed to publish event",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}

	s.logger.Info("Order status changed",
		zap.String("order_id", order.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.Bool("forced", force))

	return order, nil
}

// SetPaymentStatus records the outcome of the STK push: Confirmed with a
// receipt, or Failed. It never touches the fulfillment status; the two
// tracks are deliberately decoupled.
func (s *OrderService) SetPaymentStatus(ctx context.Context, id string, status domain.PaymentStatus, receipt string) (domain.Order, error) {
	if status != domain.PaymentStatusConfirmed && status != domain.PaymentStatusFailed {
		return domain.Order{}, &ValidationError{Field: "status", Reason: "must be Confirmed or Failed"}
	}

	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	payment := domain.Payment{Status: status}
	if order.Payment != nil {
		payment.Phone = order.Payment.Phone
	}
	if status == domain.PaymentStatusConfirmed {
		payment.Receipt = strings.TrimSpace(receipt)
	}
	order.Payment = &payment

	if err := s.orders.Update(ctx, order); err != nil {
		return domain.Order{}, err
	}

	if err := s.producer.PublishPaymentUpdated(events.PaymentUpdatedEvent{
		EventID:   uuid.New().String(),
		OrderID:   order.ID,
		Status:    string(status),
		Receipt:   payment.Receipt,
		Timestamp: time.Now(),
	}); err != nil {
		s.logger.Error("Failed to publish event",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}

	return order, nil
}
