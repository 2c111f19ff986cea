package assets

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	appErrors "github.com/aminati-ec/catalog-studio/internal/errors"
	"github.com/aminati-ec/catalog-studio/internal/models"
)

var (
	productNumberRe = regexp.MustCompile(`(\d{4,})`)
	detailIndexRe   = regexp.MustCompile(`(?i)-detail-?(\d+)`)
)

// Resolve classifies an image filename or URL into an ImageAsset.
//
//	"21765-thumb.jpg"                        → thumbnail
//	"21765-detail-3.jpg"                     → detail, order 3
//	"https://c.imgz.jp/004/21765-1(2).jpg"   → unknown role, product 21765
//
// The product number is the first run of 4+ digits in the basename; without
// one the asset is unresolvable, which is a distinct error condition from
// everything else in the pipeline.
func Resolve(reference string) (*models.ImageAsset, error) {
	base := basename(reference)

	match := productNumberRe.FindString(base)
	if match == "" {
		return nil, appErrors.UnresolvableAssetError(
			fmt.Sprintf("No product number found in %q", reference))
	}

	asset := &models.ImageAsset{
		ProductNumber: match,
		Name:          base,
		Role:          models.RoleUnknown,
		Source:        models.SourceLocalFile,
	}

	if strings.HasPrefix(reference, "http://") || strings.HasPrefix(reference, "https://") {
		asset.Source = models.SourceRemoteURL
		asset.URL = reference
	}

	lower := strings.ToLower(base)

	switch {
	case strings.Contains(lower, "-thumb"):
		asset.Role = models.RoleThumbnail
	case strings.Contains(lower, "-detail"):
		asset.Role = models.RoleDetail

		if m := detailIndexRe.FindStringSubmatch(base); m != nil {
			if idx, err := strconv.Atoi(m[1]); err == nil {
				asset.Order = &idx
			}
		}
	}

	return asset, nil
}

// basename strips directory components for both URL and Windows-style paths.
func basename(reference string) string {
	base := reference

	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}

	if i := strings.LastIndex(base, `\`); i >= 0 {
		base = base[i+1:]
	}

	return base
}
