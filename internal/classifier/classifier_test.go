package classifier_test

import (
	"testing"

	"github.com/aminati-ec/catalog-studio/internal/classifier"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Skirt", "Aラインロングスカート", "スカート"},
		{"TShirt beats generic shirt rule", "オーバーサイズTシャツ", "Tシャツ"},
		{"Shirt", "オックスフォードシャツ", "シャツ"},
		{"Blouse maps to shirt", "シフォンブラウス", "シャツ"},
		{"Shirt beats knit in rule order", "ニットシャツ", "シャツ"},
		{"Denim maps to pants", "ストレッチデニム", "パンツ"},
		{"Dress", "花柄ワンピース", "ワンピース"},
		{"Hoodie maps to outerwear", "ビッグシルエットパーカー", "アウター"},
		{"English keyword", "Leather Belt", "ベルト"},
		{"Case is normalized", "BASIC TEE", "Tシャツ"},
		{"No rule matches", "ヨガマット", classifier.CategoryOther},
		{"Empty name", "", classifier.CategoryOther},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, classifier.Classify(tc.input))
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	first := classifier.Classify("Aラインロングスカート")

	for range 100 {
		assert.Equal(t, first, classifier.Classify("Aラインロングスカート"))
	}
}

func TestCategoriesEndsWithCatchAll(t *testing.T) {
	cats := classifier.Categories()

	assert.NotEmpty(t, cats)
	assert.Equal(t, classifier.CategoryOther, cats[len(cats)-1])
	assert.Contains(t, cats, "スカート")
}
