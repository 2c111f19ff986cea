package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	appError "github.com/aminati-ec/catalog-studio/internal/errors"
	"github.com/aminati-ec/catalog-studio/internal/models"
)

const (
	snapshotPath  = "products.json"
	indexPath     = "index.html"
	productsDir   = "products"
	snapshotLabel = "update product feed"
)

// ContentStore is a versioned file store for the published site. Put must be
// given the revision returned by the last Get for an existing path, so a
// concurrent writer surfaces as a conflict instead of a silent overwrite.
type ContentStore interface {
	Get(ctx context.Context, path string) (content []byte, revision string, found bool, err error)
	Put(ctx context.Context, path string, content []byte, message, revision string) (string, error)
	Delete(ctx context.Context, path string, message, revision string) error
}

// Publisher writes the rendered storefront (product pages, index shell and
// product feed) to the content store.
type Publisher struct {
	store  ContentStore
	logger *slog.Logger
}

func New(store ContentStore, logger *slog.Logger) *Publisher {
	return &Publisher{store: store, logger: logger}
}

// PagePath returns the store path of a product's detail page.
func PagePath(productNumber string) string {
	return fmt.Sprintf("%s/%s.html", productsDir, productNumber)
}

// LoadSnapshot fetches the currently published feed. A missing feed is a
// first run: it returns a nil snapshot and an empty revision, not an error.
func (p *Publisher) LoadSnapshot(ctx context.Context) (*models.Snapshot, string, error) {
	content, revision, found, err := p.store.Get(ctx, snapshotPath)
	if err != nil {
		return nil, "", appError.ThirdPartyError("failed to load product feed").WithError(err)
	}
	if !found {
		p.logger.Info("no published feed found, starting from an empty catalog")
		return nil, "", nil
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(content, &snapshot); err != nil {
		return nil, "", appError.InternalError("published feed is not valid JSON").WithError(err)
	}
	return &snapshot, revision, nil
}

// PublishPage writes one product's detail page, replacing any previous
// version of the same page.
func (p *Publisher) PublishPage(ctx context.Context, productNumber, html string) error {
	path := PagePath(productNumber)

	_, revision, _, err := p.store.Get(ctx, path)
	if err != nil {
		return appError.ThirdPartyError("failed to check existing page").WithError(err)
	}

	message := fmt.Sprintf("publish product page %s", productNumber)
	if _, err := p.store.Put(ctx, path, []byte(html), message, revision); err != nil {
		return appError.ThirdPartyError(fmt.Sprintf("failed to publish page %s", productNumber)).WithError(err)
	}

	p.logger.Info("published product page", slog.String("path", path))
	return nil
}

// PublishSnapshot writes the feed document. The revision must come from the
// LoadSnapshot call the snapshot was merged against.
func (p *Publisher) PublishSnapshot(ctx context.Context, snapshot *models.Snapshot, revision string) error {
	content, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return appError.InternalError("failed to encode product feed").WithError(err)
	}

	message := fmt.Sprintf("%s (%d products)", snapshotLabel, snapshot.Count)
	if _, err := p.store.Put(ctx, snapshotPath, content, message, revision); err != nil {
		return appError.ThirdPartyError("failed to publish product feed").WithError(err)
	}

	p.logger.Info("published product feed", slog.Int("count", snapshot.Count))
	return nil
}

// PublishIndex writes the catalog landing page.
func (p *Publisher) PublishIndex(ctx context.Context, html string) error {
	_, revision, _, err := p.store.Get(ctx, indexPath)
	if err != nil {
		return appError.ThirdPartyError("failed to check existing index").WithError(err)
	}

	if _, err := p.store.Put(ctx, indexPath, []byte(html), "publish catalog index", revision); err != nil {
		return appError.ThirdPartyError("failed to publish index").WithError(err)
	}

	p.logger.Info("published catalog index")
	return nil
}

// RemovePages deletes the detail pages of products dropped by a full sync.
// Pages that are already gone are skipped.
func (p *Publisher) RemovePages(ctx context.Context, productNumbers []string) error {
	for _, number := range productNumbers {
		path := PagePath(number)

		_, revision, found, err := p.store.Get(ctx, path)
		if err != nil {
			return appError.ThirdPartyError(fmt.Sprintf("failed to check page %s", number)).WithError(err)
		}
		if !found {
			continue
		}

		message := fmt.Sprintf("remove product page %s", number)
		if err := p.store.Delete(ctx, path, message, revision); err != nil {
			return appError.ThirdPartyError(fmt.Sprintf("failed to remove page %s", number)).WithError(err)
		}
		p.logger.Info("removed product page", slog.String("path", path))
	}
	return nil
}
