// Package analytics computes read-only rollups over products, orders, and
// suppliers. Every call recomputes from current store state; nothing caches.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/example/inventra/internal/model"
	"github.com/example/inventra/internal/store"
)

const (
	topProductsLimit = 5
	recentWindow     = 7 * 24 * time.Hour
	staffListCap     = 3
	staleOrderAge    = 24 * time.Hour
)

type Service struct {
	products  store.ProductStore
	orders    store.OrderStore
	suppliers store.SupplierStore
	now       func() time.Time
}

func NewService(products store.ProductStore, orders store.OrderStore, suppliers store.SupplierStore) *Service {
	return &Service{
		products:  products,
		orders:    orders,
		suppliers: suppliers,
		now:       time.Now,
	}
}

// DashboardStats backs the main dashboard view.
type DashboardStats struct {
	TotalProducts int      `json:"totalProducts"`
	TotalOrders   int      `json:"totalOrders"`
	LowStock      int      `json:"lowStock"`
	TopProducts   []string `json:"topProducts"`
}

// CategoryStats is the per-category rollup.
type CategoryStats struct {
	Count    int     `json:"count"`
	Value    float64 `json:"value"`
	LowStock int     `json:"lowStock"`
}

// LowStockItem is a trimmed product view for stock alerts.
type LowStockItem struct {
	Name         string `json:"name"`
	CurrentStock int    `json:"currentStock"`
	ReorderLevel int    `json:"reorderLevel"`
}

// TopProduct is a product ranked by total units sold.
type TopProduct struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	TotalSold int    `json:"totalSold"`
}

// Snapshot aggregates everything the insight prompts need.
type Snapshot struct {
	TotalProducts      int                      `json:"totalProducts"`
	TotalValue         float64                  `json:"totalValue"`
	LowStockCount      int                      `json:"lowStockCount"`
	LowStockItems      []LowStockItem           `json:"lowStockItems"`
	CriticalStockCount int                      `json:"criticalStockCount"`
	Categories         map[string]CategoryStats `json:"categories"`
	TopCategory        string                   `json:"topCategory"`
	TotalOrders        int                      `json:"totalOrders"`
	RecentOrders       int                      `json:"recentOrders"`
	AvgOrderValue      float64                  `json:"avgOrderValue"`
	SupplierCount      int                      `json:"supplierCount"`
	AvgSupplierRating  float64                  `json:"avgSupplierRating"`
}

// ManagerData is the manager-scoped operational rollup.
type ManagerData struct {
	TotalOrders        int     `json:"totalOrders"`
	WeeklyOrders       int     `json:"weeklyOrders"`
	PendingOrders      int     `json:"pendingOrders"`
	ProcessingOrders   int     `json:"processingOrders"`
	AvgOrderValue      float64 `json:"avgOrderValue"`
	LowStockCount      int     `json:"lowStockCount"`
	CriticalStockCount int     `json:"criticalStockCount"`
	SupplierCount      int     `json:"supplierCount"`
}

// PriorityOrder is a trimmed pending order for the staff task list.
type PriorityOrder struct {
	Customer string  `json:"customer"`
	Amount   float64 `json:"amount"`
	Items    int     `json:"items"`
}

// StaffData is the staff-scoped task rollup. Lists are capped at three
// entries each.
type StaffData struct {
	CriticalStockCount int             `json:"criticalStockCount"`
	PendingOrdersCount int             `json:"pendingOrdersCount"`
	TodayOrdersCount   int             `json:"todayOrdersCount"`
	UrgentTasksCount   int             `json:"urgentTasksCount"`
	CriticalItems      []LowStockItem  `json:"criticalItems"`
	PriorityOrders     []PriorityOrder `json:"priorityOrders"`
}

// Dashboard computes the headline dashboard numbers. "This month" means
// created on or after the first calendar day of the current month in the
// server's time zone.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	monthlyOrders, err := s.orders.CountSince(ctx, s.monthStart())
	if err != nil {
		return nil, err
	}

	lowStock := 0
	for i := range products {
		if products[i].LowStock() {
			lowStock++
		}
	}

	top, err := s.TopProducts(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(top))
	for _, tp := range top {
		names = append(names, tp.Name)
	}

	return &DashboardStats{
		TotalProducts: len(products),
		TotalOrders:   monthlyOrders,
		LowStock:      lowStock,
		TopProducts:   names,
	}, nil
}

// TopProducts flattens all order lines, sums units per product, and returns
// the top five. Ties break on ascending product ID so the ranking is stable
// across calls.
func (s *Service) TopProducts(ctx context.Context) ([]TopProduct, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	sold := make(map[string]int)
	names := make(map[string]string)
	for _, o := range orders {
		for _, item := range o.Items {
			sold[item.ProductID] += item.Quantity
			if item.ProductName != "" {
				names[item.ProductID] = item.ProductName
			}
		}
	}

	ranked := make([]TopProduct, 0, len(sold))
	for id, total := range sold {
		ranked = append(ranked, TopProduct{ProductID: id, Name: names[id], TotalSold: total})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalSold != ranked[j].TotalSold {
			return ranked[i].TotalSold > ranked[j].TotalSold
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})

	if len(ranked) > topProductsLimit {
		ranked = ranked[:topProductsLimit]
	}
	return ranked, nil
}

// Snapshot computes the full aggregate set used by insight prompts.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.suppliers.List(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		TotalProducts: len(products),
		TotalOrders:   len(orders),
		SupplierCount: len(suppliers),
		Categories:    make(map[string]CategoryStats),
	}

	for i := range products {
		p := &products[i]
		snap.TotalValue += p.StockValue()

		cat := snap.Categories[p.Category]
		cat.Count++
		cat.Value += p.StockValue()
		if p.LowStock() {
			cat.LowStock++
			snap.LowStockCount++
			snap.LowStockItems = append(snap.LowStockItems, LowStockItem{
				Name:         p.Name,
				CurrentStock: p.Quantity,
				ReorderLevel: p.ReorderLevel,
			})
		}
		if p.CriticalStock() {
			snap.CriticalStockCount++
		}
		snap.Categories[p.Category] = cat
	}
	snap.TopCategory = topCategory(snap.Categories)

	weekAgo := s.now().Add(-recentWindow)
	var totalAmount float64
	for _, o := range orders {
		totalAmount += o.TotalAmount
		if !o.CreatedAt.Before(weekAgo) {
			snap.RecentOrders++
		}
	}
	if len(orders) > 0 {
		snap.AvgOrderValue = totalAmount / float64(len(orders))
	}

	if len(suppliers) > 0 {
		ratingSum := 0
		for _, sup := range suppliers {
			ratingSum += sup.Rating
		}
		snap.AvgSupplierRating = float64(ratingSum) / float64(len(suppliers))
	}

	return snap, nil
}

// ForManager computes the manager-scoped rollup.
func (s *Service) ForManager(ctx context.Context) (*ManagerData, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	data := &ManagerData{
		TotalOrders:        snap.TotalOrders,
		AvgOrderValue:      snap.AvgOrderValue,
		LowStockCount:      snap.LowStockCount,
		CriticalStockCount: snap.CriticalStockCount,
		SupplierCount:      snap.SupplierCount,
	}

	weekAgo := s.now().Add(-recentWindow)
	for _, o := range orders {
		if !o.CreatedAt.Before(weekAgo) {
			data.WeeklyOrders++
		}
		switch o.Status {
		case model.StatusPending:
			data.PendingOrders++
		case model.StatusProcessing:
			data.ProcessingOrders++
		}
	}
	return data, nil
}

// ForStaff computes the staff-scoped task rollup.
func (s *Service) ForStaff(ctx context.Context) (*StaffData, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	data := &StaffData{}

	for i := range products {
		if products[i].CriticalStock() {
			data.CriticalStockCount++
			if len(data.CriticalItems) < staffListCap {
				data.CriticalItems = append(data.CriticalItems, LowStockItem{
					Name:         products[i].Name,
					CurrentStock: products[i].Quantity,
					ReorderLevel: products[i].ReorderLevel,
				})
			}
		}
	}

	now := s.now()
	staleDeadlines := 0
	for _, o := range orders {
		if sameDay(o.CreatedAt, now) {
			data.TodayOrdersCount++
		}
		switch o.Status {
		case model.StatusPending:
			data.PendingOrdersCount++
			if len(data.PriorityOrders) < staffListCap {
				data.PriorityOrders = append(data.PriorityOrders, PriorityOrder{
					Customer: o.CustomerName,
					Amount:   o.TotalAmount,
					Items:    len(o.Items),
				})
			}
		case model.StatusProcessing:
			if now.Sub(o.CreatedAt) >= staleOrderAge {
				staleDeadlines++
			}
		}
	}

	data.UrgentTasksCount = data.CriticalStockCount + data.PendingOrdersCount + staleDeadlines
	return data, nil
}

func (s *Service) monthStart() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func topCategory(categories map[string]CategoryStats) string {
	best := ""
	var bestValue float64
	for name, stats := range categories {
		if best == "" || stats.Value > bestValue || (stats.Value == bestValue && name < best) {
			best = name
			bestValue = stats.Value
		}
	}
	return best
}
