package media

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 10 << 20 // 10MB

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.POST("/media", h.Upload)
}

// @Summary プロフィール画像のアップロード
// @Tags media
// @Accept mpfd
// @Produce json
// @Router /media [post]
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("archivo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "archivo is required"})
		return
	}
	if fh.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "archivo is too large"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read archivo"})
		return
	}
	defer f.Close()

	uri, err := h.svc.Save(fh.Filename, f)
	if err != nil {
		if err == ErrUnsupportedType {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported media type"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"uri": uri})
}
