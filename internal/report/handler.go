package report

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

const maxImageBytes = 10 << 20 // 10MB

type Handler struct{ exp *Exporter }

func RegisterRoutes(r gin.IRoutes, exp *Exporter) {
	h := &Handler{exp: exp}

	r.POST("/reports/text", h.ExportText)
	r.POST("/reports/chart", h.ExportChart)
}

type ExportTextRequest struct {
	Titulo string `json:"titulo" binding:"required"`
	Cuerpo string `json:"cuerpo" binding:"required"`
}

// @Summary 指標テキストを共有文書としてエクスポート
// @Tags reports
// @Accept json
// @Produce json
// @Success 201 {object} ExportResult
// @Router /reports/text [post]
func (h *Handler) ExportText(c *gin.Context) {
	var req ExportTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	res, err := h.exp.ExportText(c.Request.Context(), req.Titulo, req.Cuerpo)
	if err != nil {
		c.JSON(statusOf(err), errBody(err))
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary チャート画像を共有文書としてエクスポート
// @Tags reports
// @Accept mpfd
// @Produce json
// @Success 201 {object} ExportResult
// @Router /reports/chart [post]
func (h *Handler) ExportChart(c *gin.Context) {
	titulo := c.PostForm("titulo")
	if titulo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "titulo is required"})
		return
	}

	fh, err := c.FormFile("imagen")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "imagen is required"})
		return
	}
	if fh.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "imagen is too large"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read imagen"})
		return
	}
	defer f.Close()
	img, err := io.ReadAll(io.LimitReader(f, maxImageBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read imagen"})
		return
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mime.TypeByExtension(path.Ext(fh.Filename))
	}

	res, err := h.exp.ExportImage(c.Request.Context(), titulo, img, mimeType)
	if err != nil {
		c.JSON(statusOf(err), errBody(err))
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ===== helpers =====

func statusOf(err error) int {
	var ee *ExportError
	if errors.As(err, &ee) && ee.Stage == StageCompose {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func errBody(err error) gin.H {
	var ee *ExportError
	if errors.As(err, &ee) {
		return gin.H{"error": gin.H{"code": "EXPORT_FAILED", "stage": ee.Stage, "message": ee.Err.Error()}}
	}
	return gin.H{"error": gin.H{"code": "EXPORT_FAILED", "message": err.Error()}}
}
