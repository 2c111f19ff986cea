package pipeline

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/aminati-ec/catalog-studio/internal/assets"
	"github.com/aminati-ec/catalog-studio/internal/models"
)

// Session is the operator's working set between import and generation:
// the parsed products plus the image assignments made so far. One session
// serves one operator; the mutex only guards against overlapping HTTP
// requests from the same browser.
type Session struct {
	mu       sync.Mutex
	products map[string]*models.Product
	registry *assets.Registry
}

func NewSession(logger *slog.Logger) *Session {
	return &Session{
		products: make(map[string]*models.Product),
		registry: assets.NewRegistry(logger),
	}
}

// MergeProducts upserts an import batch into the session. Re-importing a
// product number replaces the earlier row.
func (s *Session) MergeProducts(products map[string]*models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for number, product := range products {
		s.products[number] = product
	}
}

// Products returns the session's products ordered by product number. Each
// entry is a copy: the generation loop annotates its products in place, and
// handing out the stored pointers would race a concurrent session summary.
func (s *Session) Products() []*models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	numbers := make([]string, 0, len(s.products))
	for number := range s.products {
		numbers = append(numbers, number)
	}
	sort.Strings(numbers)

	out := make([]*models.Product, 0, len(numbers))
	for _, number := range numbers {
		clone := *s.products[number]
		out = append(out, &clone)
	}
	return out
}

// RegisterAsset files one image reference under the session's registry.
func (s *Session) RegisterAsset(reference string, channel assets.Channel, overwrite bool, content []byte) (*models.ImageAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, err := s.registry.Register(reference, channel, overwrite)
	if err != nil {
		return nil, err
	}
	asset.Content = content
	return asset, nil
}

// View is the session summary returned to the admin UI.
type View struct {
	Products []*models.Product            `json:"products"`
	Assets   map[string]assets.AssetCount `json:"assets"`
}

func (s *Session) Summary() *View {
	view := &View{Products: s.Products()}

	s.mu.Lock()
	defer s.mu.Unlock()
	view.Assets = s.registry.Counts()
	return view
}

// images returns the registry entries for one product, locked for the
// duration of the generation loop's read.
func (s *Session) images(productNumber string) (*models.ImageAsset, []*models.ImageAsset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Thumbnail(productNumber), s.registry.Details(productNumber)
}
