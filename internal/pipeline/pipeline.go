package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aminati-ec/catalog-studio/internal/classifier"
	"github.com/aminati-ec/catalog-studio/internal/describe"
	appError "github.com/aminati-ec/catalog-studio/internal/errors"
	"github.com/aminati-ec/catalog-studio/internal/merge"
	"github.com/aminati-ec/catalog-studio/internal/metrics"
	"github.com/aminati-ec/catalog-studio/internal/models"
	"github.com/aminati-ec/catalog-studio/internal/publisher"
	"github.com/aminati-ec/catalog-studio/internal/renderer"
)

// Uploader stores image bytes and resolves the public URL of a storage key.
// A nil uploader degrades to registered URLs and the page placeholder.
type Uploader interface {
	Upload(ctx context.Context, key string, content []byte, contentType string) (string, error)
	PublicURL(key string) string
}

// Service runs the generation pipeline over a session and executes full
// catalog synchronization against the published snapshot.
type Service interface {
	Generate(ctx context.Context, session *Session, publish bool) (*GenerateResult, error)
	FullSync(ctx context.Context, req *models.SyncRequest) (*SyncResult, error)
}

type service struct {
	uploader    Uploader
	synthesizer *describe.Synthesizer
	renderer    *renderer.Renderer
	merger      *merge.Merger
	publisher   *publisher.Publisher
	logger      *slog.Logger
}

func NewService(uploader Uploader, synthesizer *describe.Synthesizer, pageRenderer *renderer.Renderer, merger *merge.Merger, pub *publisher.Publisher, logger *slog.Logger) Service {
	return &service{
		uploader:    uploader,
		synthesizer: synthesizer,
		renderer:    pageRenderer,
		merger:      merger,
		publisher:   pub,
		logger:      logger,
	}
}

// ItemFailure records why one product was skipped; the run continues.
type ItemFailure struct {
	ProductNumber string `json:"productNumber"`
	Stage         string `json:"stage"`
	Reason        string `json:"reason"`
}

type GenerateResult struct {
	Generated    int                        `json:"generated"`
	Failed       int                        `json:"failed"`
	Published    bool                       `json:"published"`
	CatalogCount int                        `json:"catalogCount"`
	Descriptions map[string]describe.Source `json:"descriptions"`
	Failures     []ItemFailure              `json:"failures,omitempty"`
}

type SyncResult struct {
	DryRun  bool     `json:"dryRun"`
	Kept    int      `json:"kept"`
	Removed []string `json:"removed"`
}

// Generate processes every session product in product-number order: upload
// images, synthesize the description, classify, render and, when publish is
// set, write the page set, merged feed and index to the content store. One
// product's failure never aborts the run.
func (s *service) Generate(ctx context.Context, session *Session, publish bool) (*GenerateResult, error) {
	products := session.Products()
	if len(products) == 0 {
		return nil, appError.BadRequestError("no products in session, import a spreadsheet first")
	}

	existing, revision, err := s.publisher.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{Descriptions: make(map[string]describe.Source, len(products))}
	entries := make([]models.CatalogEntry, 0, len(products))

	for _, product := range products {
		entry, failure := s.processProduct(ctx, session, product, publish)
		if failure != nil {
			s.logger.Error("product failed, continuing run",
				slog.String("productNumber", failure.ProductNumber),
				slog.String("stage", failure.Stage),
				slog.String("reason", failure.Reason))

			metrics.PipelineFailures.Inc()
			result.Failures = append(result.Failures, *failure)
			result.Failed++
			continue
		}

		result.Descriptions[product.ProductNumber] = entry.source
		entries = append(entries, entry.catalog)
		result.Generated++
	}

	snapshot := s.merger.Merge(existing, entries, time.Now())
	result.CatalogCount = snapshot.Count

	if !publish {
		s.logger.Info("dry run complete, nothing published",
			slog.Int("generated", result.Generated),
			slog.Int("failed", result.Failed))
		return result, nil
	}

	if err := s.publisher.PublishSnapshot(ctx, snapshot, revision); err != nil {
		return nil, err
	}

	indexHTML, err := s.renderer.RenderIndexPage()
	if err != nil {
		return nil, appError.InternalError("failed to render index page").WithError(err)
	}
	if err := s.publisher.PublishIndex(ctx, indexHTML); err != nil {
		return nil, err
	}

	result.Published = true
	s.logger.Info("generation run published",
		slog.Int("generated", result.Generated),
		slog.Int("failed", result.Failed),
		slog.Int("catalogCount", snapshot.Count))

	return result, nil
}

type processedProduct struct {
	catalog models.CatalogEntry
	source  describe.Source
}

func (s *service) processProduct(ctx context.Context, session *Session, product *models.Product, publish bool) (*processedProduct, *ItemFailure) {
	fail := func(stage string, err error) (*processedProduct, *ItemFailure) {
		return nil, &ItemFailure{ProductNumber: product.ProductNumber, Stage: stage, Reason: err.Error()}
	}

	images := s.resolveImages(ctx, session, product.ProductNumber)

	product.Category = classifier.Classify(product.ProductName)

	description, source := s.synthesizer.Synthesize(ctx, product)
	metrics.DescriptionsGenerated.WithLabelValues(string(source)).Inc()

	page, err := s.renderer.RenderProductPage(product, description, images)
	if err != nil {
		return fail("render", err)
	}

	if publish {
		if err := s.publisher.PublishPage(ctx, product.ProductNumber, page); err != nil {
			return fail("publish", err)
		}
		metrics.PagesPublished.Inc()
	}

	return &processedProduct{
		catalog: models.CatalogEntry{
			ProductNumber: product.ProductNumber,
			ProductName:   product.ProductName,
			BrandName:     product.BrandName,
			Category:      product.Category,
			SalePrice:     product.SalePrice,
			OriginalPrice: product.OriginalPrice,
			Thumbnail:     images.Thumbnail,
			Description:   description,
			Colors:        product.Colors,
			Sizes:         product.Sizes,
			Material:      product.Material,
			Origin:        product.Origin,
		},
		source: source,
	}, nil
}

// resolveImages turns the product's registered assets into public URLs.
// Upload problems degrade instead of failing the product: the constructed
// public URL is used on the assumption the object lands there out of band,
// and a product with no thumbnail at all gets the placeholder at render
// time.
func (s *service) resolveImages(ctx context.Context, session *Session, productNumber string) models.ResolvedImages {
	thumbnail, details := session.images(productNumber)

	var resolved models.ResolvedImages
	if thumbnail != nil {
		resolved.Thumbnail = s.assetURL(ctx, thumbnail, fmt.Sprintf("products/%s-thumb.jpg", productNumber))
	}

	for i, detail := range details {
		key := fmt.Sprintf("products/%s-detail-%d.jpg", productNumber, i+1)
		resolved.Details = append(resolved.Details, s.assetURL(ctx, detail, key))
	}
	return resolved
}

func (s *service) assetURL(ctx context.Context, asset *models.ImageAsset, key string) string {
	if asset.Source == models.SourceRemoteURL {
		return asset.URL
	}

	if s.uploader == nil {
		metrics.AssetUploads.WithLabelValues("skipped").Inc()
		return asset.URL
	}

	if len(asset.Content) == 0 {
		// Registered by name only; assume the object already exists.
		metrics.AssetUploads.WithLabelValues("assumed").Inc()
		return s.uploader.PublicURL(key)
	}

	url, err := s.uploader.Upload(ctx, key, asset.Content, contentType(asset.Name))
	if err != nil {
		s.logger.Warn("upload failed, using constructed public URL",
			slog.String("key", key),
			slog.String("error", err.Error()))
		metrics.AssetUploads.WithLabelValues("fallback").Inc()
		return s.uploader.PublicURL(key)
	}

	metrics.AssetUploads.WithLabelValues("uploaded").Inc()
	return url
}

func contentType(name string) string {
	switch {
	case strings.HasSuffix(strings.ToLower(name), ".png"):
		return "image/png"
	case strings.HasSuffix(strings.ToLower(name), ".webp"):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// FullSync reconciles the published snapshot against the complete list of
// valid product numbers. Without Confirm it only reports what would be
// removed; with Confirm it deletes the orphaned pages and rewrites the feed.
func (s *service) FullSync(ctx context.Context, req *models.SyncRequest) (*SyncResult, error) {
	existing, revision, err := s.publisher.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	plan, err := s.merger.PlanFullSync(existing, req.ValidProductNumbers)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Kept: len(plan.Keep), Removed: plan.Remove}

	if !req.Confirm {
		result.DryRun = true
		s.logger.Info("full sync dry run",
			slog.Int("kept", result.Kept),
			slog.Int("removable", len(plan.Remove)))
		return result, nil
	}

	if len(plan.Remove) > 0 {
		if err := s.publisher.RemovePages(ctx, plan.Remove); err != nil {
			return nil, err
		}
	}

	snapshot := s.merger.ApplySync(plan, time.Now())
	if err := s.publisher.PublishSnapshot(ctx, snapshot, revision); err != nil {
		return nil, err
	}

	s.logger.Info("full sync applied",
		slog.Int("kept", result.Kept),
		slog.Int("removed", len(plan.Remove)))

	return result, nil
}
