package describe_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aminati-ec/catalog-studio/internal/cache"
	"github.com/aminati-ec/catalog-studio/internal/describe"
	"github.com/aminati-ec/catalog-studio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)

	return args.String(0), args.Error(1)
}

type stubCache struct {
	entries map[string]string
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]string)}
}

func (c *stubCache) Get(_ context.Context, key string, value interface{}) (bool, error) {
	v, ok := c.entries[key]
	if !ok {
		return false, nil
	}

	*(value.(*string)) = v

	return true, nil
}

func (c *stubCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.entries[key] = value.(string)

	return nil
}

func (c *stubCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)

	return nil
}

func (c *stubCache) Close() error { return nil }

func sampleProduct() *models.Product {
	return &models.Product{
		ProductNumber: "21765",
		ProductName:   "オーバーサイズTシャツ",
		BrandName:     "AMINATI",
		Category:      "Tシャツ",
		Material:      "コットン100%",
		SalePrice:     3980,
		Colors:        []string{"白", "黒"},
		Sizes:         []string{"M", "L"},
		Version:       1,
	}
}

func TestSynthesize(t *testing.T) {
	ctx := t.Context()
	policy := describe.RetryPolicy{MaxAttempts: 2, Backoff: time.Millisecond, Retryable: transientOnly}

	t.Run("Success - generated description", func(t *testing.T) {
		gen := new(mockGenerator)
		gen.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "オーバーサイズTシャツ") && strings.Contains(prompt, "コットン100%")
		})).Return("上質な一枚です。\n\n毎日活躍します。", nil).Once()

		s := describe.NewSynthesizer(gen, policy, nil, 0, nil)

		text, source := s.Synthesize(ctx, sampleProduct())

		assert.Equal(t, describe.SourceGenerated, source)
		assert.Equal(t, "上質な一枚です。\n\n毎日活躍します。", text)
		gen.AssertExpectations(t)
	})

	t.Run("Markup in model output is stripped", func(t *testing.T) {
		gen := new(mockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything).
			Return(`<b>上質</b>な一枚です。<script>alert(1)</script>`, nil).Once()

		s := describe.NewSynthesizer(gen, policy, nil, 0, nil)

		text, source := s.Synthesize(ctx, sampleProduct())

		assert.Equal(t, describe.SourceGenerated, source)
		assert.NotContains(t, text, "<b>")
		assert.NotContains(t, text, "<script>")
		assert.Contains(t, text, "上質")
		gen.AssertExpectations(t)
	})

	t.Run("Cached - repeat call serves the stored copy", func(t *testing.T) {
		gen := new(mockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything).Return("上質な一枚です。", nil).Once()

		c := newStubCache()
		s := describe.NewSynthesizer(gen, policy, c, time.Hour, nil)

		_, source := s.Synthesize(ctx, sampleProduct())
		require.Equal(t, describe.SourceGenerated, source)
		assert.Contains(t, c.entries, cache.Key(cache.DescriptionKeyPrefix, "21765:v1"))

		text, source := s.Synthesize(ctx, sampleProduct())

		assert.Equal(t, describe.SourceCached, source)
		assert.Equal(t, "上質な一枚です。", text)
		gen.AssertExpectations(t)
	})

	t.Run("Cached - version bump regenerates", func(t *testing.T) {
		gen := new(mockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything).Return("上質な一枚です。", nil).Twice()

		c := newStubCache()
		s := describe.NewSynthesizer(gen, policy, c, time.Hour, nil)

		_, source := s.Synthesize(ctx, sampleProduct())
		require.Equal(t, describe.SourceGenerated, source)

		bumped := sampleProduct()
		bumped.Version = 2

		_, source = s.Synthesize(ctx, bumped)

		assert.Equal(t, describe.SourceGenerated, source)
		assert.Contains(t, c.entries, cache.Key(cache.DescriptionKeyPrefix, "21765:v2"))
		gen.AssertExpectations(t)
	})

	t.Run("Fallback - no generator configured", func(t *testing.T) {
		s := describe.NewSynthesizer(nil, policy, nil, 0, nil)

		text, source := s.Synthesize(ctx, sampleProduct())

		assert.Equal(t, describe.SourceFallback, source)
		assert.NotEmpty(t, text)
		assert.Contains(t, text, "オーバーサイズTシャツ")
	})

	t.Run("Fallback - retries exhausted", func(t *testing.T) {
		gen := new(mockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything).Return("", errTransient).Twice()

		s := describe.NewSynthesizer(gen, policy, nil, 0, nil)

		text, source := s.Synthesize(ctx, sampleProduct())

		assert.Equal(t, describe.SourceFallback, source)
		assert.NotEmpty(t, text)
		gen.AssertExpectations(t)
	})

	t.Run("Fallback - non-retryable failure aborts after one call", func(t *testing.T) {
		gen := new(mockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything).Return("", assert.AnError).Once()

		s := describe.NewSynthesizer(gen, policy, nil, 0, nil)

		_, source := s.Synthesize(ctx, sampleProduct())

		assert.Equal(t, describe.SourceFallback, source)
		gen.AssertExpectations(t)
	})
}

func TestFallback(t *testing.T) {
	t.Run("Never empty, multi-paragraph", func(t *testing.T) {
		text := describe.Fallback(sampleProduct())

		assert.NotEmpty(t, text)
		assert.GreaterOrEqual(t, strings.Count(text, "\n\n"), 3)
	})

	t.Run("Deterministic", func(t *testing.T) {
		p := sampleProduct()

		assert.Equal(t, describe.Fallback(p), describe.Fallback(p))
	})

	t.Run("Mentions discount when discounted", func(t *testing.T) {
		p := sampleProduct()
		p.OriginalPrice = 4980

		text := describe.Fallback(p)

		assert.Contains(t, text, "OFF")
	})

	t.Run("Unknown category still produces copy", func(t *testing.T) {
		p := &models.Product{ProductNumber: "1", ProductName: "謎の商品", SalePrice: 100}

		text := describe.Fallback(p)

		require.NotEmpty(t, text)
		assert.Contains(t, text, "謎の商品")
	})
}

func TestCleanDescription(t *testing.T) {
	t.Run("Strips preamble", func(t *testing.T) {
		got := describe.CleanDescription("以下が説明文：上質な一枚です。")

		assert.Equal(t, "上質な一枚です。", got)
	})

	t.Run("Collapses blank lines", func(t *testing.T) {
		got := describe.CleanDescription("一段落目。\n\n\n\n二段落目。")

		assert.Equal(t, "一段落目。\n\n二段落目。", got)
	})

	t.Run("Caps overlong text at a sentence boundary", func(t *testing.T) {
		long := strings.Repeat("あ", 250) + "。" + strings.Repeat("い", 100)

		got := describe.CleanDescription(long)

		assert.True(t, strings.HasSuffix(got, "。"))
		assert.Equal(t, 251, len([]rune(got)))
	})

	t.Run("Short text unchanged", func(t *testing.T) {
		assert.Equal(t, "短い説明。", describe.CleanDescription("短い説明。"))
	})
}
