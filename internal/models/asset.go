package models

// AssetRole classifies an image by its position on the product page.
type AssetRole string

const (
	RoleThumbnail AssetRole = "thumbnail"
	RoleDetail    AssetRole = "detail"
	RoleUnknown   AssetRole = "unknown"
)

// AssetSource distinguishes files that still need uploading from images
// already hosted somewhere.
type AssetSource string

const (
	SourceLocalFile AssetSource = "local-file"
	SourceRemoteURL AssetSource = "remote-url"
)

// ImageAsset is one image bound to a product by its product number.
// Order is nil unless the filename carried an explicit -detail-<N> index.
type ImageAsset struct {
	ProductNumber string      `json:"productNumber"`
	Name          string      `json:"name"`
	URL           string      `json:"url,omitempty"`
	Role          AssetRole   `json:"role"`
	Source        AssetSource `json:"source"`
	Order         *int        `json:"order,omitempty"`
	Content       []byte      `json:"-"`
}

// ResolvedImages is the renderer-facing view of a product's images after
// upload: one thumbnail URL plus detail URLs in display order.
type ResolvedImages struct {
	Thumbnail string   `json:"thumbnail"`
	Details   []string `json:"details"`
}
