package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/oakdonuts/pos-backend/internal/cart"
	"github.com/oakdonuts/pos-backend/internal/catalog"
	"github.com/oakdonuts/pos-backend/pkg/config"
	"github.com/oakdonuts/pos-backend/pkg/db/models"
	"github.com/oakdonuts/pos-backend/pkg/enums"
	pkgerrors "github.com/oakdonuts/pos-backend/pkg/errors"
	"github.com/oakdonuts/pos-backend/pkg/money"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartSession interface {
	Lines() []cart.Line
	Clear()
}

// Service is the order engine: checkout plus lifecycle operations over stored
// orders.
type Service interface {
	Checkout(ctx context.Context) (string, error)
	Get(ctx context.Context, transactionID string) (*OrderDTO, error)
	List(ctx context.Context) ([]OrderDTO, error)
	SetStatus(ctx context.Context, transactionID string, status enums.OrderStatus) error
	Delete(ctx context.Context, transactionID string) error
}

type service struct {
	repo  Repository
	tx    txRunner
	cart  cartSession
	items *catalog.Repository
	cfg   config.OrdersConfig
}

// NewService builds an order engine with the required dependencies.
func NewService(repo Repository, tx txRunner, cartSess cartSession, items *catalog.Repository, cfg config.OrdersConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if cartSess == nil {
		return nil, fmt.Errorf("cart session required")
	}
	if items == nil {
		return nil, fmt.Errorf("item resolver required")
	}
	if cfg.IDRetryBudget < 1 {
		cfg.IDRetryBudget = 1
	}
	if cfg.TransactionPrefix == "" {
		cfg.TransactionPrefix = "OD-"
	}
	return &service{
		repo:  repo,
		tx:    tx,
		cart:  cartSess,
		items: items,
		cfg:   cfg,
	}, nil
}

// Checkout converts the session cart into a durable order. The price
// resolution and the header+lines write happen inside one transaction: either
// the full order lands or nothing does. The cart is only cleared after the
// commit, so a failed checkout consumes nothing.
func (s *service) Checkout(ctx context.Context) (string, error) {
	lines := s.cart.Lines()
	if len(lines) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeEmptyCart, "cart has no lines")
	}

	var transactionID string
	for attempt := 0; attempt < s.cfg.IDRetryBudget; attempt++ {
		candidate := s.generateTransactionID()

		err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)
			items := s.items.WithTx(tx)

			exists, err := repo.TransactionIDExists(ctx, candidate)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check transaction id")
			}
			if exists {
				return errTransactionIDTaken
			}

			orderLines := make([]models.OrderLine, 0, len(lines))
			prices := make([]int64, 0, len(lines))
			for position, line := range lines {
				item, err := items.FindByID(ctx, line.ItemID)
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return pkgerrors.New(pkgerrors.CodeNotFound, "cart references an item no longer in the catalog").
							WithDetails(map[string]int64{"item_id": line.ItemID})
					}
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve cart line")
				}
				prices = append(prices, item.PriceCents)
				orderLines = append(orderLines, models.OrderLine{
					TransactionID:  candidate,
					ItemID:         item.ID,
					Name:           item.Name,
					Category:       item.Category,
					UnitPriceCents: item.PriceCents,
					Position:       position,
				})
			}

			order := &models.Order{
				TransactionID: candidate,
				Status:        enums.OrderStatusPending,
				TotalCents:    money.SumCents(prices...),
			}
			if err := repo.CreateOrder(ctx, order); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return errTransactionIDTaken
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert order header")
			}
			if err := repo.CreateOrderLines(ctx, orderLines); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert order lines")
			}
			return nil
		})
		if errors.Is(err, errTransactionIDTaken) {
			continue
		}
		if err != nil {
			return "", err
		}

		transactionID = candidate
		break
	}

	if transactionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeConflict, "could not allocate a unique transaction id")
	}

	s.cart.Clear()
	return transactionID, nil
}

func (s *service) Get(ctx context.Context, transactionID string) (*OrderDTO, error) {
	order, err := s.repo.FindByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	dto := toOrderDTO(order)
	s.attachCurrentItems(ctx, &dto)
	return &dto, nil
}

func (s *service) List(ctx context.Context) ([]OrderDTO, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, toOrderDTO(&orders[i]))
	}
	return dtos, nil
}

// SetStatus moves the order to the requested lifecycle status. With
// StrictStatus unset any status may overwrite any other, matching the
// historical behavior; with it set only pending orders may move, and only to
// completed or cancelled.
func (s *service) SetStatus(ctx context.Context, transactionID string, status enums.OrderStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "status must be pending, completed, or cancelled")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByTransactionID(ctx, transactionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		if order.Status == status {
			return nil
		}
		if s.cfg.StrictStatus && order.Status != enums.OrderStatusPending {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order status is terminal").
				WithDetails(map[string]string{"current": string(order.Status)})
		}

		if err := repo.UpdateStatus(ctx, transactionID, status); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		return nil
	})
}

// Delete removes the order header and all of its lines atomically.
func (s *service) Delete(ctx context.Context, transactionID string) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).DeleteOrder(ctx, transactionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
		}
		return nil
	})
}

// attachCurrentItems decorates lines with the catalog's current view of each
// referenced item. Missing items are left bare: the stored snapshot is the
// record, the current view is display sugar.
func (s *service) attachCurrentItems(ctx context.Context, dto *OrderDTO) {
	for i := range dto.Lines {
		item, err := s.items.FindByID(ctx, dto.Lines[i].ItemID)
		if err != nil {
			continue
		}
		dto.Lines[i].Current = &CurrentItem{
			Name:        item.Name,
			Description: item.Description,
			PriceCents:  item.PriceCents,
			Category:    item.Category,
		}
	}
}

var errTransactionIDTaken = errors.New("transaction id taken")

// generateTransactionID renders the configured prefix plus eight uppercase
// hex characters drawn from a random uuid.
func (s *service) generateTransactionID() string {
	token := strings.ToUpper(uuid.NewString()[:8])
	return s.cfg.TransactionPrefix + token
}
