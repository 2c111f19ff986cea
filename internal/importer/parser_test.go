package importer_test

import (
	"testing"

	appErrors "github.com/aminati-ec/catalog-studio/internal/errors"
	"github.com/aminati-ec/catalog-studio/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header() []string {
	return []string{"商品番号", "ブランド名", "商品名", "販売価格", "販売元価格", "素材", "原産国", "カラー", "サイズ"}
}

func TestParse(t *testing.T) {
	parser := importer.NewParser(nil)

	t.Run("Success - valid rows", func(t *testing.T) {
		rows := [][]string{
			header(),
			{"10001", "AMINATI", "オーバーサイズTシャツ", "¥3,980", "5980", "コットン100%", "日本", "白,黒", "S,M,L"},
			{"10002", "", "Aラインロングスカート", "12,800円", "", "", "", "", ""},
		}

		result, err := parser.Parse(rows)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Imported)
		assert.Empty(t, result.Errors)

		p1 := result.Products["10001"]
		require.NotNil(t, p1)
		assert.Equal(t, "オーバーサイズTシャツ", p1.ProductName)
		assert.InDelta(t, 3980, p1.SalePrice, 0.001)
		assert.InDelta(t, 5980, p1.OriginalPrice, 0.001)
		assert.Equal(t, []string{"白", "黒"}, p1.Colors)
		assert.Equal(t, []string{"S", "M", "L"}, p1.Sizes)

		p2 := result.Products["10002"]
		require.NotNil(t, p2)
		assert.InDelta(t, 12800, p2.SalePrice, 0.001)
		assert.Zero(t, p2.OriginalPrice)
		assert.Empty(t, p2.Colors)
	})

	t.Run("Failure - missing required header aborts import", func(t *testing.T) {
		rows := [][]string{
			{"商品番号", "ブランド名", "商品名"}, // 販売価格 missing
			{"10001", "AMINATI", "Tシャツ"},
		}

		result, err := parser.Parse(rows)

		assert.Nil(t, result)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeHeaderValidation, appErr.Code)
		assert.Contains(t, appErr.Message, "販売価格")
	})

	t.Run("Header matched by substring", func(t *testing.T) {
		rows := [][]string{
			{"商品番号（必須）", "ブランド名", "商品名（必須）", "販売価格（税込）"},
			{"10001", "", "Tシャツ", "1000"},
		}

		result, err := parser.Parse(rows)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Imported)
	})

	t.Run("Partial failure - bad row skipped, batch continues", func(t *testing.T) {
		rows := [][]string{
			header(),
			{"10001", "", "Tシャツ", "1000"},
			{"10002", "", "", "2000"}, // empty product name
			{"10003", "", "スカート", "3000"},
		}

		result, err := parser.Parse(rows)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Imported)
		assert.Equal(t, 1, result.Skipped)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, 2, result.Errors[0].Row)
		assert.Equal(t, "productName", result.Errors[0].Field)
	})

	t.Run("Non-numeric price fails the row", func(t *testing.T) {
		rows := [][]string{
			header(),
			{"10001", "", "Tシャツ", "N/A"},
		}

		result, err := parser.Parse(rows)

		require.NoError(t, err)
		assert.Zero(t, result.Imported)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "salePrice", result.Errors[0].Field)
	})

	t.Run("Duplicate product number - last row wins", func(t *testing.T) {
		rows := [][]string{
			header(),
			{"10001", "", "旧商品名", "1000"},
			{"10001", "", "新商品名", "2000"},
		}

		result, err := parser.Parse(rows)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Imported)
		assert.Equal(t, "新商品名", result.Products["10001"].ProductName)
		assert.InDelta(t, 2000, result.Products["10001"].SalePrice, 0.001)
	})

	t.Run("Blank product number rows are ignored silently", func(t *testing.T) {
		rows := [][]string{
			header(),
			{"", "", "メモ行", ""},
			{"10001", "", "Tシャツ", "1000"},
		}

		result, err := parser.Parse(rows)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Imported)
		assert.Empty(t, result.Errors)
	})
}

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"¥12,800", 12800, true},
		{"12800", 12800, true},
		{"12,800円", 12800, true},
		{" 3980 ", 3980, true},
		{"￥1,000", 1000, true},
		{"N/A", 0, false},
		{"", 0, false},
		{"無料", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := importer.NormalizePrice(tc.input)

			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.InDelta(t, tc.expected, got, 0.001)
			}
		})
	}
}
