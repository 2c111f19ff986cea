package models

// ImportRequest carries the pre-parsed spreadsheet: row 0 is the header,
// rows 1..N are data. Cell parsing itself happens upstream.
type ImportRequest struct {
	Rows [][]string `json:"rows" validate:"required,min=2"`
}

// ImportResult reports partial-failure semantics: bad rows never abort the
// batch, they land in Errors with their 1-based row index.
type ImportResult struct {
	Imported int                 `json:"imported"`
	Skipped  int                 `json:"skipped"`
	Errors   []RowError          `json:"errors,omitempty"`
	Products map[string]*Product `json:"-"`
}

type RowError struct {
	Row    int    `json:"row"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

// RegisterAssetRequest registers one image reference into an intake channel.
// Channel intent wins over the filename's role marker. Content optionally
// carries the image bytes base64-encoded; references without content are
// assumed to already live at their public location.
type RegisterAssetRequest struct {
	Reference string `json:"reference" validate:"required"`
	Channel   string `json:"channel" validate:"required,oneof=thumbnail detail"`
	Overwrite bool   `json:"overwrite"`
	Content   string `json:"content,omitempty" validate:"omitempty,base64"`
}

// GenerateRequest triggers the pipeline for every product in the session.
type GenerateRequest struct {
	Publish bool `json:"publish"`
}

// SyncRequest is the explicit full-resync mode: ValidProductNumbers must be
// the complete list of products that should remain published. Anything else
// in the remote snapshot becomes a deletion candidate; deletion only happens
// when Confirm is set.
type SyncRequest struct {
	ValidProductNumbers []string `json:"validProductNumbers" validate:"required,min=1"`
	Confirm             bool     `json:"confirm"`
}

// OrderNotifyRequest is the checkout form payload forwarded as a best-effort
// email to the store operator.
type OrderNotifyRequest struct {
	ProductNumber string `json:"productNumber" validate:"required"`
	ProductName   string `json:"productName" validate:"required"`
	Color         string `json:"color"`
	Size          string `json:"size"`
	Quantity      int    `json:"quantity" validate:"required,gt=0"`
	Total         int64  `json:"total" validate:"required,gt=0"`
	CustomerName  string `json:"customerName" validate:"required"`
	CustomerKana  string `json:"customerKana"`
	Phone         string `json:"phone" validate:"required"`
	Email         string `json:"email" validate:"omitempty,email"`
	Zip           string `json:"zip" validate:"required"`
	Address       string `json:"address" validate:"required"`
	Note          string `json:"note"`
}
