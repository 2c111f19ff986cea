package assets

import (
	"fmt"
	"log/slog"
	"sort"

	appErrors "github.com/aminati-ec/catalog-studio/internal/errors"
	"github.com/aminati-ec/catalog-studio/internal/models"
)

// MaxDetailImages caps the detail carousel per product. The 11th image is
// rejected, never silently truncated.
const MaxDetailImages = 10

// Channel is the intake an asset was dropped into. Channel intent always
// wins over the filename's role marker; a mismatch is only a warning.
type Channel string

const (
	ChannelThumbnail Channel = "thumbnail"
	ChannelDetail    Channel = "detail"
)

// Registry holds the session's image assignments: one thumbnail slot and an
// ordered detail list per product number. It is owned by the caller and not
// safe for concurrent use, matching the single-operator processing model.
type Registry struct {
	thumbnails map[string]*models.ImageAsset
	details    map[string][]*models.ImageAsset
	logger     *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	return &Registry{
		thumbnails: make(map[string]*models.ImageAsset),
		details:    make(map[string][]*models.ImageAsset),
		logger:     logger,
	}
}

// Register resolves a filename/URL and files it under the channel's role.
// Assigning a second thumbnail without overwrite returns a WOULD_OVERWRITE
// error so the UI can ask for confirmation. The 11th detail image for one
// product returns a CAPACITY_EXCEEDED error; the first 10 stay valid.
func (r *Registry) Register(reference string, channel Channel, overwrite bool) (*models.ImageAsset, error) {

	asset, err := Resolve(reference)
	if err != nil {
		return nil, err
	}

	// Channel intent wins over the filename hint.
	switch channel {
	case ChannelThumbnail:
		if asset.Role == models.RoleDetail {
			r.logger.Warn("Detail-named file registered as thumbnail",
				slog.String("name", asset.Name),
				slog.String("productNumber", asset.ProductNumber),
			)
		}

		asset.Role = models.RoleThumbnail

		return asset, r.setThumbnail(asset, overwrite)

	case ChannelDetail:
		if asset.Role == models.RoleThumbnail {
			r.logger.Warn("Thumbnail-named file registered as detail image",
				slog.String("name", asset.Name),
				slog.String("productNumber", asset.ProductNumber),
			)
		}

		asset.Role = models.RoleDetail

		return asset, r.addDetail(asset)

	default:
		return nil, appErrors.BadRequestError(fmt.Sprintf("Unknown intake channel %q", channel))
	}
}

func (r *Registry) setThumbnail(asset *models.ImageAsset, overwrite bool) error {
	if existing, ok := r.thumbnails[asset.ProductNumber]; ok && !overwrite {
		return appErrors.WouldOverwriteError(
			fmt.Sprintf("Product %s already has thumbnail %s", asset.ProductNumber, existing.Name)).
			WithDetail("Resend the asset with overwrite set to replace it")
	}

	r.thumbnails[asset.ProductNumber] = asset
	r.logger.Info("Thumbnail registered",
		slog.String("productNumber", asset.ProductNumber),
		slog.String("name", asset.Name),
	)

	return nil
}

func (r *Registry) addDetail(asset *models.ImageAsset) error {
	if len(r.details[asset.ProductNumber]) >= MaxDetailImages {
		return appErrors.CapacityExceededError(
			fmt.Sprintf("Product %s already has %d detail images", asset.ProductNumber, MaxDetailImages))
	}

	r.details[asset.ProductNumber] = append(r.details[asset.ProductNumber], asset)
	r.logger.Info("Detail image registered",
		slog.String("productNumber", asset.ProductNumber),
		slog.String("name", asset.Name),
	)

	return nil
}

// Thumbnail returns the thumbnail slot for a product, nil when unset.
func (r *Registry) Thumbnail(productNumber string) *models.ImageAsset {
	return r.thumbnails[productNumber]
}

// Details returns the product's detail images in display order: explicit
// -detail-<N> indexes ascending first, then the unindexed ones by filename.
func (r *Registry) Details(productNumber string) []*models.ImageAsset {
	list := r.details[productNumber]

	ordered := make([]*models.ImageAsset, 0, len(list))
	unordered := make([]*models.ImageAsset, 0, len(list))

	for _, a := range list {
		if a.Order != nil {
			ordered = append(ordered, a)
		} else {
			unordered = append(unordered, a)
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool { return *ordered[i].Order < *ordered[j].Order })
	sort.SliceStable(unordered, func(i, j int) bool { return unordered[i].Name < unordered[j].Name })

	return append(ordered, unordered...)
}

// Counts reports thumbnail presence and detail count per product number.
func (r *Registry) Counts() map[string]AssetCount {
	out := make(map[string]AssetCount)

	for pn := range r.thumbnails {
		c := out[pn]
		c.HasThumbnail = true
		out[pn] = c
	}

	for pn, list := range r.details {
		c := out[pn]
		c.DetailCount = len(list)
		out[pn] = c
	}

	return out
}

type AssetCount struct {
	HasThumbnail bool `json:"hasThumbnail"`
	DetailCount  int  `json:"detailCount"`
}
