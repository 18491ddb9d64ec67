package services

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"igreja_backend/internal/domain"
)

const (
	// MaxUploadSize caps uploads before any decoding happens.
	MaxUploadSize = 5 << 20 // 5MB

	maxImageDimension = 1200
	jpegQuality       = 85
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// UploadService re-encodes incoming images to JPEG, resizes them to fit
// 1200×1200 and stores them under a generated key, returning the public URL.
type UploadService struct {
	Dir       string
	PublicURL string
}

func NewUploadService(dir, publicURL string) UploadService {
	return UploadService{Dir: dir, PublicURL: publicURL}
}

// SaveImage validates size and MIME type synchronously, before decoding.
func (s UploadService) SaveImage(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return "", domain.UpstreamError{Msg: "erro ao ler o arquivo enviado", Err: err}
	}
	if len(data) > MaxUploadSize {
		return "", domain.NewValidationError("file", "arquivo excede o limite de 5MB")
	}
	if len(data) == 0 {
		return "", domain.NewValidationError("file", "arquivo vazio")
	}

	// The declared Content-Type is not trusted; sniff the actual bytes.
	contentType := http.DetectContentType(data)
	if !allowedImageTypes[contentType] {
		return "", domain.NewValidationError("file", "tipo de arquivo não permitido, envie JPEG, PNG ou WebP")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", domain.NewValidationError("file", "imagem inválida ou corrompida")
	}

	img = fitWithin(img, maxImageDimension)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", domain.UpstreamError{Msg: "erro ao processar a imagem", Err: err}
	}

	name := fmt.Sprintf("%d-%s.jpg", time.Now().UnixMilli(), uuid.NewString())
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", domain.UpstreamError{Msg: "erro ao gravar a imagem", Err: err}
	}
	if err := os.WriteFile(filepath.Join(s.Dir, name), out.Bytes(), 0o644); err != nil {
		return "", domain.UpstreamError{Msg: "erro ao gravar a imagem", Err: err}
	}

	return s.PublicURL + "/" + name, nil
}

// fitWithin scales the image down so both dimensions fit max, preserving
// aspect ratio. Smaller images pass through untouched.
func fitWithin(img image.Image, max int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= max && h <= max {
		return img
	}

	scale := float64(max) / float64(w)
	if h > w {
		scale = float64(max) / float64(h)
	}
	dstW := int(float64(w) * scale)
	dstH := int(float64(h) * scale)

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
