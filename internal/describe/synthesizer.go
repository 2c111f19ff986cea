package describe

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/aminati-ec/catalog-studio/internal/cache"
	"github.com/aminati-ec/catalog-studio/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

// maxDescriptionRunes caps generated copy; overlong output is cut at the
// last sentence boundary past minCutRunes when one exists.
const (
	maxDescriptionRunes = 300
	minCutRunes         = 200
)

// Generator is the external generative-text collaborator.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Source records which path produced a description.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
	SourceCached    Source = "cached"
)

type Synthesizer struct {
	generator Generator
	policy    RetryPolicy
	cache     cache.Cache
	cacheTTL  time.Duration
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
}

// NewSynthesizer builds the description synthesizer. generator may be nil
// (no credential configured) and cache may be nil; both degrade to the
// deterministic fallback path.
func NewSynthesizer(generator Generator, policy RetryPolicy, descCache cache.Cache, cacheTTL time.Duration, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Synthesizer{
		generator: generator,
		policy:    policy,
		cache:     descCache,
		cacheTTL:  cacheTTL,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

// Synthesize produces marketing copy for a product. The result is never
// empty: on missing credential, exhausted retries or any other failure it
// falls back to the local composition.
func (s *Synthesizer) Synthesize(ctx context.Context, product *models.Product) (string, Source) {

	if s.cache != nil {
		var cached string

		if found, err := s.cache.Get(ctx, cacheKey(product), &cached); err == nil && found && cached != "" {
			s.logger.Info("Description served from cache",
				slog.String("productNumber", product.ProductNumber))

			return cached, SourceCached
		}
	}

	if s.generator == nil {
		return Fallback(product), SourceFallback
	}

	var text string

	err := s.policy.Do(ctx, func(ctx context.Context) error {
		generated, genErr := s.generator.Generate(ctx, Prompt(product))
		if genErr != nil {
			return genErr
		}

		text = generated

		return nil
	})

	if err != nil {
		s.logger.Warn("Generative service failed, using fallback description",
			slog.String("productNumber", product.ProductNumber),
			slog.String("error", err.Error()),
		)

		return Fallback(product), SourceFallback
	}

	// Model output is untrusted: strip any markup before it enters the
	// rendering path as plain text.
	text = CleanDescription(s.sanitizer.Sanitize(text))
	if text == "" {
		return Fallback(product), SourceFallback
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey(product), text, s.cacheTTL); err != nil {
			s.logger.Warn("Failed to cache description", slog.String("error", err.Error()))
		}
	}

	return text, SourceGenerated
}

// cacheKey versions the key so re-imported rows regenerate instead of
// serving stale copy.
func cacheKey(product *models.Product) string {
	return cache.Key(cache.DescriptionKeyPrefix, fmt.Sprintf("%s:v%d", product.ProductNumber, product.Version))
}

// Prompt embeds the product attributes into the fixed generation template.
func Prompt(product *models.Product) string {

	var attrs strings.Builder

	fmt.Fprintf(&attrs, "商品名: %s\n", product.ProductName)

	if product.BrandName != "" {
		fmt.Fprintf(&attrs, "ブランド: %s\n", product.BrandName)
	}

	if product.Category != "" {
		fmt.Fprintf(&attrs, "カテゴリー: %s\n", product.Category)
	}

	if product.Material != "" {
		fmt.Fprintf(&attrs, "素材: %s\n", product.Material)
	}

	if len(product.Colors) > 0 {
		fmt.Fprintf(&attrs, "カラー: %s\n", strings.Join(product.Colors, "、"))
	}

	if len(product.Sizes) > 0 {
		fmt.Fprintf(&attrs, "サイズ: %s\n", strings.Join(product.Sizes, "、"))
	}

	return fmt.Sprintf(`以下の商品情報から、ECサイト用の商品説明文を生成してください。

%s
以下の条件で説明文を作成してください：
- 200-300文字程度
- 4〜5つの短い段落に分ける
- 商品の魅力を抽象的に表現
- 具体的な仕様や数値は書かない
- 上質さ、快適さ、デザイン性を強調
- 「です・ます」調で統一

説明文のみを出力してください。前置きや補足は不要です。`, attrs.String())
}

var (
	preambleRe   = regexp.MustCompile(`(?s)^.*?説明文[:：]\s*`)
	extraBlankRe = regexp.MustCompile(`\n{3,}`)
)

// CleanDescription normalizes generative output: drops a "説明文:" style
// preamble, collapses runs of blank lines, and enforces the length cap,
// preferring to cut at a sentence boundary.
func CleanDescription(text string) string {

	cleaned := preambleRe.ReplaceAllString(text, "")
	cleaned = extraBlankRe.ReplaceAllString(cleaned, "\n\n")
	cleaned = strings.TrimSpace(cleaned)

	runes := []rune(cleaned)
	if len(runes) <= maxDescriptionRunes {
		return cleaned
	}

	head := string(runes[:maxDescriptionRunes])

	if idx := strings.LastIndex(head, "。"); idx >= 0 {
		if cut := len([]rune(head[:idx])); cut >= minCutRunes {
			return head[:idx] + "。"
		}
	}

	return string(runes[:maxDescriptionRunes-3]) + "..."
}
