package handlers

import (
	"context"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/ignatzorin/mediadb-backend/internal/dto"
	"github.com/ignatzorin/mediadb-backend/internal/http/handlers/common"
	"github.com/ignatzorin/mediadb-backend/internal/models"
	"github.com/ignatzorin/mediadb-backend/internal/pkg/apperror"
	"github.com/ignatzorin/mediadb-backend/internal/service"
	"github.com/ignatzorin/mediadb-backend/internal/validation"
)

// AssetService операции над ассетами, которые использует хэндлер.
type AssetService interface {
	List(ctx context.Context, userID, categoryID, query string) ([]models.AssetWithCategory, error)
	Create(ctx context.Context, req dto.CreateAssetRequest) (*models.Asset, error)
	CreateFromUpload(ctx context.Context, in service.UploadInput) (*models.Asset, error)
	Update(ctx context.Context, id string, patch models.AssetPatch) (*models.Asset, error)
	Archive(ctx context.Context, id string) (*models.Asset, error)
}

// AssetHandler обслуживает /api/assets.
type AssetHandler struct {
	assets AssetService
}

// NewAssetHandler создаёт новый хэндлер.
func NewAssetHandler(assets AssetService) *AssetHandler {
	return &AssetHandler{assets: assets}
}

// List обрабатывает GET /api/assets?userId=&categoryId=&q=.
func (h *AssetHandler) List(c *gin.Context) {
	items, err := h.assets.List(c.Request.Context(), c.Query("userId"), c.Query("categoryId"), c.Query("q"))
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, items)
}

// Create обрабатывает POST /api/assets. multipart/form-data идёт через загрузку файла,
// остальные запросы разбираются как JSON.
func (h *AssetHandler) Create(c *gin.Context) {
	if c.ContentType() == binding.MIMEMultipartPOSTForm {
		h.createFromUpload(c)
		return
	}

	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.AbortWithError(c, validation.FromBindError(err))
		return
	}

	asset, err := h.assets.Create(c.Request.Context(), req)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	common.RespondData(c, http.StatusCreated, asset)
}

// createFromUpload проверяет поля формы и наличие ровно одной части file
// до того, как что-либо будет записано на диск.
func (h *AssetHandler) createFromUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		common.AbortWithError(c, apperror.ValidationForm(validation.MsgInvalidForm))
		return
	}

	var req dto.CreateAssetFormRequest
	details := &apperror.Details{}
	if err := c.ShouldBindWith(&req, binding.FormMultipart); err != nil {
		details = validation.FromFormBindError(err).Details
	}

	files := form.File["file"]
	switch {
	case len(files) == 0:
		details.AddForm(validation.MsgFileRequired)
	case len(files) > 1:
		details.AddForm(validation.MsgSingleFile)
	}

	if !details.Empty() {
		common.AbortWithError(c, apperror.Validation(details))
		return
	}

	req.Tags = normalizeTags(req.Tags)

	asset, err := h.upload(c.Request.Context(), req, files[0])
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	common.RespondData(c, http.StatusCreated, asset)
}

func (h *AssetHandler) upload(ctx context.Context, req dto.CreateAssetFormRequest, fh *multipart.FileHeader) (*models.Asset, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return h.assets.CreateFromUpload(ctx, service.UploadInput{
		Form:        req,
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		File:        src,
	})
}

// Update обрабатывает PATCH /api/assets/:id.
func (h *AssetHandler) Update(c *gin.Context) {
	var req dto.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.AbortWithError(c, validation.FromBindError(err))
		return
	}

	asset, err := h.assets.Update(c.Request.Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, asset)
}

// Archive обрабатывает DELETE /api/assets/:id. Строка и файл сохраняются.
func (h *AssetHandler) Archive(c *gin.Context) {
	asset, err := h.assets.Archive(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, asset)
}

// normalizeTags принимает как повторяющиеся поля tags, так и одно поле "a, b, c".
func normalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, value := range raw {
		for _, tag := range strings.Split(value, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}
