package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront-cms/internal/domain"
	"storefront-cms/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const recentTransactionLimit = 10

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// OverviewService builds the owner dashboard and orders table
type OverviewService interface {
	Overview(ctx context.Context, userID string, storeID uuid.UUID) (*domain.Store, *domain.Overview, error)
	Orders(ctx context.Context, userID string, storeID uuid.UUID) (*domain.Store, []domain.OrderRow, error)
}

type overviewService struct {
	stores      StoreService
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

// NewOverviewService creates a new instance of OverviewService
func NewOverviewService(stores StoreService, productRepo repository.ProductRepository, orderRepo repository.OrderRepository) OverviewService {
	return &overviewService{stores: stores, productRepo: productRepo, orderRepo: orderRepo}
}

func (s *overviewService) Overview(ctx context.Context, userID string, storeID uuid.UUID) (*domain.Store, *domain.Overview, error) {
	store, err := s.stores.Authorize(ctx, userID, storeID)
	if err != nil {
		return nil, nil, err
	}

	paid, err := s.orderRepo.ListPaidByStore(ctx, storeID)
	if err != nil {
		return nil, nil, err
	}

	stock, err := s.productRepo.CountActive(ctx, storeID)
	if err != nil {
		return nil, nil, err
	}

	overview := &domain.Overview{
		TotalRevenue:       decimal.Zero,
		SalesCount:         len(paid),
		StockCount:         stock,
		GraphRevenue:       make([]domain.MonthlyRevenue, len(monthNames)),
		RecentTransactions: []domain.Transaction{},
	}
	for i, name := range monthNames {
		overview.GraphRevenue[i] = domain.MonthlyRevenue{Name: name, Total: decimal.Zero}
	}

	// paid is ordered newest first
	for i, order := range paid {
		total := order.Total()
		overview.TotalRevenue = overview.TotalRevenue.Add(total)

		bucket := &overview.GraphRevenue[order.CreatedAt.Month()-1]
		bucket.Total = bucket.Total.Add(total)

		if i < recentTransactionLimit {
			overview.RecentTransactions = append(overview.RecentTransactions, domain.Transaction{
				Name:      order.Name,
				Email:     order.Email,
				Price:     FormatUSD(total),
				CreatedAt: FormatDate(order.CreatedAt),
			})
		}
	}

	return store, overview, nil
}

func (s *overviewService) Orders(ctx context.Context, userID string, storeID uuid.UUID) (*domain.Store, []domain.OrderRow, error) {
	store, err := s.stores.Authorize(ctx, userID, storeID)
	if err != nil {
		return nil, nil, err
	}

	orders, err := s.orderRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]domain.OrderRow, 0, len(orders))
	for _, order := range orders {
		names := make([]string, 0, len(order.Items))
		for _, item := range order.Items {
			if item.Product != nil {
				names = append(names, item.Product.Name)
			}
		}

		rows = append(rows, domain.OrderRow{
			ID:         order.ID.String(),
			IsPaid:     order.IsPaid,
			Phone:      order.Phone,
			Address:    order.Address,
			Products:   strings.Join(names, ", "),
			TotalPrice: FormatUSD(order.Total()),
			CreatedAt:  FormatDate(order.CreatedAt),
		})
	}

	return store, rows, nil
}

// FormatUSD renders an amount like "$1,234.50"
func FormatUSD(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	whole, cents := fixed[:len(fixed)-3], fixed[len(fixed)-2:]

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	return sign + "$" + grouped.String() + "." + cents
}

// FormatDate renders a date like "January 2nd, 2006"
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s %d%s, %d", t.Month(), t.Day(), ordinalSuffix(t.Day()), t.Year())
}

func ordinalSuffix(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
