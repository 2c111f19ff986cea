package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/aminati-ec/catalog-studio/internal/api/middleware"
	"github.com/aminati-ec/catalog-studio/internal/assets"
	appError "github.com/aminati-ec/catalog-studio/internal/errors"
	"github.com/aminati-ec/catalog-studio/internal/importer"
	"github.com/aminati-ec/catalog-studio/internal/metrics"
	"github.com/aminati-ec/catalog-studio/internal/models"
	"github.com/aminati-ec/catalog-studio/internal/pipeline"
	"github.com/aminati-ec/catalog-studio/internal/utils"
	"github.com/aminati-ec/catalog-studio/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// CatalogHandler owns the admin workflow: import rows, register images,
// inspect the session and run generation or a full sync.
type CatalogHandler struct {
	session   *pipeline.Session
	parser    *importer.Parser
	pipeline  pipeline.Service
	validator *validator.Validate
}

func NewCatalogHandler(session *pipeline.Session, parser *importer.Parser, pipelineService pipeline.Service) *CatalogHandler {
	return &CatalogHandler{
		session:   session,
		parser:    parser,
		pipeline:  pipelineService,
		validator: validator.New(),
	}
}

func (h *CatalogHandler) Import() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.ImportRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.parser.Parse(req.Rows)
		if err != nil {
			logger.Warn("Import aborted", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		h.session.MergeProducts(result.Products)

		metrics.RowsImported.Add(float64(result.Imported))
		metrics.RowsRejected.Add(float64(len(result.Errors)))

		logger.Info("Import completed",
			slog.Int("imported", result.Imported),
			slog.Int("skipped", result.Skipped),
			slog.Int("errors", len(result.Errors)))

		response.Success(w, http.StatusOK, result)

	}
}

func (h *CatalogHandler) RegisterAsset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterAssetRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		var content []byte
		if req.Content != "" {
			decoded, err := base64.StdEncoding.DecodeString(req.Content)
			if err != nil {
				response.Error(w, appError.BadRequestError("content is not valid base64"))
				return
			}
			content = decoded
		}

		asset, err := h.session.RegisterAsset(req.Reference, assets.Channel(req.Channel), req.Overwrite, content)
		if err != nil {
			logger.Warn("Asset registration rejected",
				slog.String("reference", req.Reference),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		metrics.AssetsRegistered.WithLabelValues(req.Channel).Inc()

		response.Success(w, http.StatusCreated, asset)

	}
}

func (h *CatalogHandler) Session() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		response.Success(w, http.StatusOK, h.session.Summary())

	}
}

func (h *CatalogHandler) Generate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.GenerateRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.pipeline.Generate(r.Context(), h.session, req.Publish)
		if err != nil {
			logger.Error("Generation run failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)

	}
}

func (h *CatalogHandler) Sync() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.SyncRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.pipeline.FullSync(r.Context(), &req)
		if err != nil {
			logger.Error("Full sync failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)

	}
}
