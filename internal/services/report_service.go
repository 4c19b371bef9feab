package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"invdash_backend/internal/models"
	"invdash_backend/internal/repositories"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

const reportProductLimit = 1000
const reportRecentOrders = 10

// ReportService renders the sales report PDF from the relational store.
type ReportService interface {
	BuildSalesReport(userID int64) (data []byte, filename string, err error)
}

type reportService struct {
	analyticsRepo repositories.AnalyticsRepository
	orderRepo     repositories.OrderRepository
	userRepo      repositories.UserRepository
	settingRepo   repositories.SettingRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(
	ar repositories.AnalyticsRepository,
	or repositories.OrderRepository,
	ur repositories.UserRepository,
	sr repositories.SettingRepository,
) ReportService {
	return &reportService{
		analyticsRepo: ar,
		orderRepo:     or,
		userRepo:      ur,
		settingRepo:   sr,
	}
}

// BuildSalesReport renders the PDF: header, sales summary, product-wise sales
// and the ten most recent orders with their line items.
func (s *reportService) BuildSalesReport(userID int64) ([]byte, string, error) {
	user, err := s.userRepo.FindUserByID(userID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}
	company := user.Username
	if user.CompanyName != nil && *user.CompanyName != "" {
		company = *user.CompanyName
	}

	currency := models.DefaultCurrency
	if value, err := s.settingRepo.GetSettingValue(userID, models.SettingCurrency); err == nil {
		currency = value
	}

	totalRevenue, err := s.analyticsRepo.TotalSales(userID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to compute total revenue: %w", err)
	}
	orderCount, err := s.analyticsRepo.CountOrders(userID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to count orders: %w", err)
	}
	productSales, err := s.analyticsRepo.ProductSales(userID, reportProductLimit)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get product sales: %w", err)
	}
	orders, err := s.orderRepo.GetOrders(userID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get orders: %w", err)
	}
	if len(orders) > reportRecentOrders {
		orders = orders[:reportRecentOrders]
	}
	for i := range orders {
		items, err := s.orderRepo.GetOrderItemsByOrderID(orders[i].ID)
		if err != nil {
			return nil, "", fmt.Errorf("failed to get items for order %d: %w", orders[i].ID, err)
		}
		orders[i].Items = items
	}

	avgOrder := decimal.Zero
	if orderCount > 0 {
		avgOrder = totalRevenue.Div(decimal.NewFromInt(int64(orderCount)))
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	money := func(d decimal.Decimal) string {
		return tr(currency + formatAmount(d))
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(company), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 8, "Sales Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, "Generated on "+time.Now().Format("January 2, 2006"), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Sales Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	summaryRows := [][2]string{
		{"Total Revenue", money(totalRevenue)},
		{"Total Orders", fmt.Sprintf("%d", orderCount)},
		{"Average Order Value", money(avgOrder)},
	}
	for _, row := range summaryRows {
		pdf.CellFormat(60, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Product-wise Sales", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(90, 7, "Product", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 7, "Quantity Sold", "1", 0, "R", true, 0, "")
	pdf.CellFormat(45, 7, "Revenue", "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if len(productSales) == 0 {
		pdf.CellFormat(170, 7, "No sales recorded", "1", 1, "C", false, 0, "")
	}
	for _, row := range productSales {
		pdf.CellFormat(90, 7, tr(row.ItemName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%d", row.TotalQuantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 7, money(row.TotalRevenue), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Recent Orders", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(38, 7, "Order #", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "Customer", "1", 0, "L", true, 0, "")
	pdf.CellFormat(26, 7, "Date", "1", 0, "L", true, 0, "")
	pdf.CellFormat(41, 7, "Items", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Total", "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if len(orders) == 0 {
		pdf.CellFormat(170, 7, "No orders placed", "1", 1, "C", false, 0, "")
	}
	for _, order := range orders {
		lines := make([]string, 0, len(order.Items))
		for _, item := range order.Items {
			lines = append(lines, fmt.Sprintf("%s x%d", item.ItemName, item.Quantity))
		}
		itemsText := strings.Join(lines, "\n")
		rowHeight := float64(len(lines)) * 5
		if rowHeight < 7 {
			rowHeight = 7
		}

		x, y := pdf.GetXY()
		pdf.CellFormat(38, rowHeight, order.OrderNumber, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, rowHeight, tr(order.Customer), "1", 0, "L", false, 0, "")
		pdf.CellFormat(26, rowHeight, order.CreatedAt.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		itemsX := pdf.GetX()
		pdf.MultiCell(41, 5, tr(itemsText), "1", "L", false)
		pdf.SetXY(itemsX+41, y)
		pdf.CellFormat(25, rowHeight, money(order.Total), "1", 1, "R", false, 0, "")
		pdf.SetXY(x, y+rowHeight)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render sales report: %w", err)
	}

	filename := "sales_report_" + time.Now().Format("2006-01-02") + ".pdf"
	return buf.Bytes(), filename, nil
}

// formatAmount renders a decimal with two fraction digits and thousands
// separators, e.g. 1234567.5 -> "1,234,567.50".
func formatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + "." + parts[1]
	if negative {
		out = "-" + out
	}
	return out
}
