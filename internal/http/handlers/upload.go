package handlers

import (
	"github.com/gin-gonic/gin"

	"igreja_backend/internal/domain"
	"igreja_backend/internal/services"
)

// UploadHandler receives one multipart image under the "image" field,
// delegates resizing and storage to the upload service and returns the
// public URL.
type UploadHandler struct {
	Uploads services.UploadService
}

func (h UploadHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		RespondDomainError(c, domain.NewValidationError("image", "arquivo de imagem é obrigatório"))
		return
	}
	defer file.Close()

	if header.Size > services.MaxUploadSize {
		RespondDomainError(c, domain.NewValidationError("image", "imagem excede o tamanho máximo de 5MB"))
		return
	}

	url, err := h.Uploads.SaveImage(file)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, gin.H{"url": url}, "imagem enviada com sucesso")
}
