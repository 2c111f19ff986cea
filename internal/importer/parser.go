package importer

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	appErrors "github.com/aminati-ec/catalog-studio/internal/errors"
	"github.com/aminati-ec/catalog-studio/internal/models"
)

// Column layout of the product sheet. Row 0 is the header, data starts at
// row 1.
const (
	colProductNumber = iota
	colBrandName
	colProductName
	colSalePrice
	colOriginalPrice
	colMaterial
	colOrigin
	colColors
	colSizes
)

// requiredHeaders are matched by substring, not equality, because the real
// sheets carry decorations like "商品番号（必須）".
var requiredHeaders = []string{"商品番号", "ブランド名", "商品名", "販売価格"}

type Parser struct {
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}

	return &Parser{logger: logger}
}

// Parse turns the pre-parsed 2-D cell array into validated products keyed by
// product number. A malformed row is logged and skipped; only a malformed
// header aborts the whole import. The last row with a given product number
// wins.
func (p *Parser) Parse(rows [][]string) (*models.ImportResult, error) {

	if len(rows) < 2 {
		return nil, appErrors.HeaderValidationError("Sheet has no data rows")
	}

	if err := validateHeader(rows[0]); err != nil {
		return nil, err
	}

	result := &models.ImportResult{
		Products: make(map[string]*models.Product),
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]

		// Rows without a product number are spacing/notes, not errors.
		if cell(row, colProductNumber) == "" {
			continue
		}

		product, rowErr := p.parseRow(row)
		if rowErr != nil {
			rowErr.Row = i
			result.Errors = append(result.Errors, *rowErr)
			result.Skipped++

			p.logger.Warn("Row skipped",
				slog.Int("row", i),
				slog.String("field", rowErr.Field),
				slog.String("reason", rowErr.Reason),
			)

			continue
		}

		if _, exists := result.Products[product.ProductNumber]; exists {
			p.logger.Info("Duplicate product number, last row wins",
				slog.String("productNumber", product.ProductNumber),
				slog.Int("row", i),
			)
		}

		result.Products[product.ProductNumber] = product
		p.logger.Info("Product registered",
			slog.String("productNumber", product.ProductNumber),
			slog.String("productName", product.ProductName),
		)
	}

	result.Imported = len(result.Products)

	return result, nil
}

func validateHeader(header []string) error {
	for _, required := range requiredHeaders {
		found := false

		for _, h := range header {
			if strings.Contains(h, required) {
				found = true

				break
			}
		}

		if !found {
			return appErrors.HeaderValidationError(
				fmt.Sprintf("Required column %q is missing from the header row", required))
		}
	}

	return nil
}

func (p *Parser) parseRow(row []string) (*models.Product, *models.RowError) {

	product := &models.Product{
		ProductNumber: cell(row, colProductNumber),
		BrandName:     cell(row, colBrandName),
		ProductName:   cell(row, colProductName),
		Material:      cell(row, colMaterial),
		Origin:        cell(row, colOrigin),
		Colors:        parseListField(cell(row, colColors)),
		Sizes:         parseListField(cell(row, colSizes)),
		Version:       1,
	}

	if product.ProductName == "" {
		return nil, &models.RowError{Field: "productName", Reason: "product name is empty"}
	}

	salePrice, ok := NormalizePrice(cell(row, colSalePrice))
	if !ok || salePrice <= 0 {
		return nil, &models.RowError{Field: "salePrice", Reason: fmt.Sprintf("sale price %q is not a positive number", cell(row, colSalePrice))}
	}

	product.SalePrice = salePrice

	// Original price is optional; an unparseable value just stays unset.
	if original, ok := NormalizePrice(cell(row, colOriginalPrice)); ok {
		product.OriginalPrice = original
	}

	return product, nil
}

// NormalizePrice strips thousands separators, currency symbols and
// whitespace before parsing. "¥12,800", "12800" and "12,800円" all come out
// as 12800.
func NormalizePrice(value string) (float64, bool) {
	cleaned := strings.NewReplacer(",", "", "，", "", "円", "", "¥", "", "￥", "").Replace(value)
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return 0, false
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}

	return price, true
}

// parseListField splits comma-separated free text preserving order,
// trimming entries and dropping empty ones. Full-width commas count too.
func parseListField(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == '、' || r == '，'
	})

	out := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

// cell returns the trimmed value at index i, tolerating short rows.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}
