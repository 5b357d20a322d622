// Package insight turns analytics aggregates into natural-language prompts
// for an external generative-AI endpoint and relays the returned prose. The
// endpoint's output is opaque; it is never parsed or validated. Any external
// failure degrades to a canned fallback response instead of an error.
package insight

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/example/inventra/internal/analytics"
	"github.com/example/inventra/internal/model"
	"github.com/example/inventra/internal/store"
)

// ErrUnknownRole marks an unrecognized role selector.
var ErrUnknownRole = errors.New("unknown role")

const fallbackInsights = `📊 Inventory Status

• Products in system
• Orders being processed
• Stock levels monitored

💡 Try asking:
- "Which items are low on stock?"
- "Show me top products"
- "What's my inventory value?"`

const defaultForecastDays = 30

type Service struct {
	analytics *analytics.Service
	products  store.ProductStore
	orders    store.OrderStore
	generator Generator
	now       func() time.Time
}

func NewService(a *analytics.Service, products store.ProductStore, orders store.OrderStore, generator Generator) *Service {
	return &Service{
		analytics: a,
		products:  products,
		orders:    orders,
		generator: generator,
		now:       time.Now,
	}
}

// AskContext is the numeric metadata returned alongside the prose.
type AskContext struct {
	LowStockItems int     `json:"lowStockItems"`
	TotalProducts int     `json:"totalProducts"`
	TotalValue    float64 `json:"totalValue"`
}

// AskResult answers a free-text inventory question.
type AskResult struct {
	Query       string     `json:"query"`
	Insights    string     `json:"insights"`
	Context     AskContext `json:"context"`
	Suggestions []string   `json:"suggestions"`
}

// Ask answers a free-text question about the inventory. Never fails: if the
// aggregates or the external call are unavailable the canned fallback is
// returned with empty metadata.
func (s *Service) Ask(ctx context.Context, query string) *AskResult {
	if query == "" {
		query = "General inquiry"
	}
	result := &AskResult{Query: query, Suggestions: []string{}}

	snap, err := s.analytics.Snapshot(ctx)
	if err != nil {
		log.WithField("err", err).Error("snapshot for ai insights")
		result.Insights = fallbackInsights
		return result
	}

	prompt := fmt.Sprintf(`You are INVENTRA AI. Answer this question about inventory: %q

Data:
- Products: %d
- Low Stock: %d
- Orders: %d
- Value: $%.2f

Provide helpful insights.`,
		query, snap.TotalProducts, snap.LowStockCount, snap.TotalOrders, snap.TotalValue)

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.WithField("err", err).Error("ai insights call failed")
		result.Insights = fallbackInsights
		return result
	}

	result.Insights = text
	result.Context = AskContext{
		LowStockItems: snap.LowStockCount,
		TotalProducts: snap.TotalProducts,
		TotalValue:    snap.TotalValue,
	}
	return result
}

// ReportResult is a generated inventory report.
type ReportResult struct {
	ReportType  string    `json:"reportType"`
	GeneratedAt time.Time `json:"generatedAt"`
	Report      string    `json:"report"`
}

// Report generates a report of the given type: weekly, forecast, performance,
// or anything else for the general status report.
func (s *Service) Report(ctx context.Context, reportType string) *ReportResult {
	result := &ReportResult{ReportType: reportType, GeneratedAt: s.now()}

	snap, err := s.analytics.Snapshot(ctx)
	if err != nil {
		log.WithField("err", err).Error("snapshot for report")
		result.Report = fallbackInsights
		return result
	}
	summary := snapshotSummary(snap)

	var prompt string
	switch reportType {
	case "weekly":
		prompt = fmt.Sprintf("Generate a comprehensive weekly inventory report based on this data:\n%s\nInclude trends, alerts, and recommendations.", summary)
	case "forecast":
		prompt = fmt.Sprintf("Create a demand forecast report for the next 30 days based on this data:\n%s\nInclude predicted stock needs and reorder recommendations.", summary)
	case "performance":
		prompt = fmt.Sprintf("Analyze product performance and create a detailed report with insights on best/worst performers:\n%s", summary)
	default:
		prompt = fmt.Sprintf("Generate a general inventory status report:\n%s", summary)
	}

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.WithFields(log.Fields{"reportType": reportType, "err": err}).Error("report call failed")
		result.Report = fallbackInsights
		return result
	}
	result.Report = text
	return result
}

// PredictionResult is a demand forecast for one product.
type PredictionResult struct {
	ProductID      string    `json:"productId"`
	Product        string    `json:"product"`
	ForecastPeriod int       `json:"forecastPeriod"`
	Prediction     string    `json:"prediction"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// PredictDemand forecasts demand for one product over the given horizon.
// A missing product is a local NotFound error; external failures degrade to
// the fallback text.
func (s *Service) PredictDemand(ctx context.Context, productID string, days int) (*PredictionResult, error) {
	if days <= 0 {
		days = defaultForecastDays
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	sold := 0
	orderCount := 0
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		for _, item := range o.Items {
			if item.ProductID == productID {
				sold += item.Quantity
				orderCount++
			}
		}
	}

	result := &PredictionResult{
		ProductID:      productID,
		Product:        p.Name,
		ForecastPeriod: days,
		GeneratedAt:    s.now(),
	}

	prompt := fmt.Sprintf(`Analyze this product's sales history and predict demand for the next %d days:

Product: %s (SKU %s, category %s)
Price: $%.2f, on hand: %d, reorder level: %d
Units sold across %d orders: %d

Provide:
1. Predicted daily demand
2. Recommended reorder quantity
3. Optimal reorder timing
4. Risk assessment
5. Seasonal factors to consider`,
		days, p.Name, p.SKU, p.Category, p.Price, p.Quantity, p.ReorderLevel, orderCount, sold)

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.WithFields(log.Fields{"product": productID, "err": err}).Error("demand prediction call failed")
		result.Prediction = fallbackInsights
		return result, nil
	}
	result.Prediction = text
	return result, nil
}

// SmartMetadata is the structured metadata next to smart insights.
type SmartMetadata struct {
	TotalProducts      int     `json:"totalProducts"`
	LowStockCount      int     `json:"lowStockCount"`
	CriticalStockCount int     `json:"criticalStockCount"`
	TotalValue         float64 `json:"totalValue"`
	RecentOrdersCount  int     `json:"recentOrdersCount"`
	AvgOrderValue      float64 `json:"avgOrderValue"`
	TopCategory        string  `json:"topCategory"`
}

// SmartResult is the business-insight payload for the dashboard.
type SmartResult struct {
	Insights    string        `json:"insights"`
	Metadata    SmartMetadata `json:"metadata"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

// Smart produces four structured business insights over the full snapshot.
func (s *Service) Smart(ctx context.Context) *SmartResult {
	result := &SmartResult{GeneratedAt: s.now()}

	snap, err := s.analytics.Snapshot(ctx)
	if err != nil {
		log.WithField("err", err).Error("snapshot for smart insights")
		result.Insights = fallbackInsights
		return result
	}

	prompt := fmt.Sprintf(`Analyze this inventory data and provide 4 smart business insights:

%s

Provide exactly 4 insights in this format:
1. [TREND/ALERT/OPTIMIZATION/RECOMMENDATION]: Brief insight about the data
2. [TREND/ALERT/OPTIMIZATION/RECOMMENDATION]: Brief insight about the data
3. [TREND/ALERT/OPTIMIZATION/RECOMMENDATION]: Brief insight about the data
4. [TREND/ALERT/OPTIMIZATION/RECOMMENDATION]: Brief insight about the data

Focus on actionable insights, stock alerts, sales trends, and optimization opportunities.`,
		snapshotSummary(snap))

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.WithField("err", err).Error("smart insights call failed")
		result.Insights = fallbackInsights
		return result
	}

	result.Insights = text
	result.Metadata = SmartMetadata{
		TotalProducts:      snap.TotalProducts,
		LowStockCount:      snap.LowStockCount,
		CriticalStockCount: snap.CriticalStockCount,
		TotalValue:         snap.TotalValue,
		RecentOrdersCount:  snap.RecentOrders,
		AvgOrderValue:      snap.AvgOrderValue,
		TopCategory:        snap.TopCategory,
	}
	return result
}

// RoleResult is the role-scoped insight payload.
type RoleResult struct {
	Role        model.Role          `json:"role"`
	Insights    string              `json:"insights"`
	Data        any                 `json:"data"`
	View        model.DashboardView `json:"view"`
	GeneratedAt time.Time           `json:"generatedAt"`
}

// ForRole produces insights scoped to a role's dashboard view.
func (s *Service) ForRole(ctx context.Context, rawRole string) (*RoleResult, error) {
	role, err := model.ParseRole(rawRole)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, rawRole)
	}

	result := &RoleResult{
		Role:        role,
		View:        model.ViewForRole(role),
		GeneratedAt: s.now(),
	}

	var prompt string
	switch role {
	case model.RoleManager:
		data, err := s.analytics.ForManager(ctx)
		if err != nil {
			log.WithField("err", err).Error("manager rollup for role insights")
			result.Insights = fallbackInsights
			return result, nil
		}
		result.Data = data
		prompt = fmt.Sprintf(`As an inventory manager, analyze this operational data and provide 4 concise management insights (max 80 characters each):

OPERATIONAL METRICS:
- Total Orders: %d
- Weekly Orders: %d
- Pending Orders: %d
- Processing Orders: %d
- Average Order Value: $%.2f
- Low Stock Items: %d
- Critical Stock Items: %d
- Active Suppliers: %d

Focus on: team efficiency, workflow optimization, resource allocation, and operational improvements.
Format: [PRIORITY/WORKFLOW/TEAM/ALERT]: brief actionable insight (max 80 chars)`,
			data.TotalOrders, data.WeeklyOrders, data.PendingOrders, data.ProcessingOrders,
			data.AvgOrderValue, data.LowStockCount, data.CriticalStockCount, data.SupplierCount)

	case model.RoleStaff:
		data, err := s.analytics.ForStaff(ctx)
		if err != nil {
			log.WithField("err", err).Error("staff rollup for role insights")
			result.Insights = fallbackInsights
			return result, nil
		}
		result.Data = data

		critical := make([]string, 0, len(data.CriticalItems))
		for _, item := range data.CriticalItems {
			critical = append(critical, fmt.Sprintf("%s (%d/%d)", item.Name, item.CurrentStock, item.ReorderLevel))
		}
		priority := make([]string, 0, len(data.PriorityOrders))
		for _, o := range data.PriorityOrders {
			priority = append(priority, fmt.Sprintf("%s ($%.2f)", o.Customer, o.Amount))
		}

		prompt = fmt.Sprintf(`As warehouse staff, analyze these urgent tasks and provide 4 immediate action items:

URGENT TASKS:
- Critical Stock Items: %d
- Pending Orders: %d
- Today's Orders: %d
- Total Urgent Tasks: %d

CRITICAL ITEMS: %s
PRIORITY ORDERS: %s

Focus on: immediate actions, task prioritization, safety checks, and customer service.
Format: [URGENT/RESTOCK/ORDER/CHECK]: specific task with clear action`,
			data.CriticalStockCount, data.PendingOrdersCount, data.TodayOrdersCount,
			data.UrgentTasksCount, strings.Join(critical, ", "), strings.Join(priority, ", "))

	default: // admin
		snap, err := s.analytics.Snapshot(ctx)
		if err != nil {
			log.WithField("err", err).Error("snapshot for role insights")
			result.Insights = fallbackInsights
			return result, nil
		}
		result.Data = snap
		prompt = fmt.Sprintf(`As a business owner, analyze this inventory overview and provide 4 executive insights:

%s

Focus on: profitability, supplier health, growth opportunities, and risk.
Format: [GROWTH/RISK/SUPPLIER/FINANCE]: brief strategic insight`, snapshotSummary(snap))
	}

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.WithFields(log.Fields{"role": role, "err": err}).Error("role insights call failed")
		result.Insights = fallbackInsights
		return result, nil
	}
	result.Insights = text
	return result, nil
}

// snapshotSummary renders the aggregates as prompt text.
func snapshotSummary(snap *analytics.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "INVENTORY OVERVIEW:\n")
	fmt.Fprintf(&b, "- Total Products: %d\n", snap.TotalProducts)
	fmt.Fprintf(&b, "- Total Value: $%.2f\n", snap.TotalValue)
	fmt.Fprintf(&b, "- Low Stock Items: %d\n", snap.LowStockCount)
	fmt.Fprintf(&b, "- Critical Stock: %d\n", snap.CriticalStockCount)

	b.WriteString("\nCATEGORY BREAKDOWN:\n")
	for _, name := range sortedCategories(snap.Categories) {
		stats := snap.Categories[name]
		fmt.Fprintf(&b, "- %s: %d items, $%.2f value, %d low stock\n", name, stats.Count, stats.Value, stats.LowStock)
	}

	b.WriteString("\nSALES DATA:\n")
	fmt.Fprintf(&b, "- Total Orders: %d\n", snap.TotalOrders)
	fmt.Fprintf(&b, "- Recent Orders (7 days): %d\n", snap.RecentOrders)
	fmt.Fprintf(&b, "- Average Order Value: $%.2f\n", snap.AvgOrderValue)

	b.WriteString("\nSUPPLIERS:\n")
	fmt.Fprintf(&b, "- Total Suppliers: %d\n", snap.SupplierCount)
	fmt.Fprintf(&b, "- Average Rating: %.1f\n", snap.AvgSupplierRating)
	return b.String()
}

func sortedCategories(categories map[string]analytics.CategoryStats) []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	// Deterministic prompt text regardless of map order.
	sort.Strings(names)
	return names
}
