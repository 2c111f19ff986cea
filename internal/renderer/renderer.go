package renderer

import (
	"encoding/json"
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/aminati-ec/catalog-studio/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Config carries the storefront constants baked into every rendered page.
type Config struct {
	StoreName        string
	BrandFallback    string
	PlaceholderImage string
	CODFee           int
	OrderEmail       string
}

// Renderer turns products into the static documents served by the storefront.
// Rendering is pure: the same product and images always produce the same bytes.
type Renderer struct {
	cfg         Config
	productTmpl *template.Template
	indexTmpl   *template.Template
	printer     *message.Printer
}

func New(cfg Config) (*Renderer, error) {
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}

	productTmpl, err := template.New("product").Funcs(funcs).Parse(productPageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse product template: %w", err)
	}

	indexTmpl, err := template.New("index").Parse(indexPageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}

	return &Renderer{
		cfg:         cfg,
		productTmpl: productTmpl,
		indexTmpl:   indexTmpl,
		printer:     message.NewPrinter(language.Japanese),
	}, nil
}

type productPageData struct {
	StoreName     string
	ProductNumber string
	BrandName     string
	ProductName   string
	SalePrice     string
	OriginalPrice string
	HasDiscount   bool
	DiscountRate  int
	Colors        []string
	Sizes         []string
	Material      string
	Origin        string
	Description   template.HTML
	Thumbnail     string
	Details       []string
	ProductJSON   template.JS
}

type indexPageData struct {
	StoreName       string
	PlaceholderJSON template.JS
}

// scriptPayload is the product state embedded in the page's inline script.
type scriptPayload struct {
	ProductNumber string  `json:"productNumber"`
	ProductName   string  `json:"productName"`
	SalePrice     float64 `json:"salePrice"`
	CODFee        int     `json:"codFee"`
	OrderEmail    string  `json:"orderEmail"`
}

// RenderProductPage builds the standalone detail page for a single product.
// A missing thumbnail falls back to the store placeholder, and the image
// carousel is omitted entirely when there are no detail images.
func (r *Renderer) RenderProductPage(product *models.Product, description string, images models.ResolvedImages) (string, error) {
	thumbnail := images.Thumbnail
	if thumbnail == "" {
		thumbnail = r.cfg.PlaceholderImage
	}

	brand := product.BrandName
	if brand == "" {
		brand = r.cfg.BrandFallback
	}

	payload, err := json.Marshal(scriptPayload{
		ProductNumber: product.ProductNumber,
		ProductName:   product.ProductName,
		SalePrice:     product.SalePrice,
		CODFee:        r.cfg.CODFee,
		OrderEmail:    r.cfg.OrderEmail,
	})
	if err != nil {
		return "", fmt.Errorf("marshal product payload: %w", err)
	}

	data := productPageData{
		StoreName:     r.cfg.StoreName,
		ProductNumber: product.ProductNumber,
		BrandName:     brand,
		ProductName:   product.ProductName,
		SalePrice:     r.formatPrice(product.SalePrice),
		OriginalPrice: r.formatPrice(product.OriginalPrice),
		HasDiscount:   product.HasDiscount() && product.DiscountRate() > 0,
		DiscountRate:  product.DiscountRate(),
		Colors:        product.Colors,
		Sizes:         product.Sizes,
		Material:      product.Material,
		Origin:        product.Origin,
		Description:   descriptionHTML(description),
		Thumbnail:     thumbnail,
		Details:       images.Details,
		ProductJSON:   template.JS(payload),
	}

	var buf strings.Builder
	if err := r.productTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render product page %s: %w", product.ProductNumber, err)
	}
	return buf.String(), nil
}

// RenderIndexPage builds the catalog landing page. The page carries no product
// data itself; it loads products.json in the browser, so the index only needs
// re-publishing when the shell changes.
func (r *Renderer) RenderIndexPage() (string, error) {
	placeholder, err := json.Marshal(r.cfg.PlaceholderImage)
	if err != nil {
		return "", fmt.Errorf("marshal placeholder: %w", err)
	}

	data := indexPageData{
		StoreName:       r.cfg.StoreName,
		PlaceholderJSON: template.JS(placeholder),
	}

	var buf strings.Builder
	if err := r.indexTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render index page: %w", err)
	}
	return buf.String(), nil
}

// descriptionHTML escapes the description text and then converts newlines to
// <br> so paragraph breaks survive. Escaping happens before the markup is
// introduced, so model output can never inject tags.
func descriptionHTML(description string) template.HTML {
	escaped := template.HTMLEscapeString(description)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return template.HTML(escaped)
}

func (r *Renderer) formatPrice(price float64) string {
	return r.printer.Sprintf("%d", int64(math.Round(price)))
}
