package handlers

import (
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/infra/storage"
)

const (
	MaxUploadBytes = 10 << 20
	uploadField    = "salonImage"
)

var (
	allowedImageExts  = []string{".jpeg", ".jpg", ".png", ".gif"}
	allowedImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/gif"}
)

// Transcoder turns an uploaded image into the stored webp bytes.
type Transcoder func(r io.Reader) ([]byte, error)

type UploadHandler struct {
	store     storage.ImageStore
	transcode Transcoder
	log       *zap.Logger
	now       func() time.Time
}

func NewUploadHandler(store storage.ImageStore, transcode Transcoder, log *zap.Logger) *UploadHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &UploadHandler{store: store, transcode: transcode, log: log, now: time.Now}
}

func (h *UploadHandler) SalonImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes+1<<20)

	fh, err := c.FormFile(uploadField)
	if err != nil {
		httperr.BadRequest(c, "missing_file", "No file uploaded or file type not supported.")
		return
	}
	if fh.Size > MaxUploadBytes {
		httperr.BadRequest(c, "file_too_large", "Image must be 10 MB or smaller.")
		return
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	mime := strings.ToLower(fh.Header.Get("Content-Type"))
	if !slices.Contains(allowedImageExts, ext) || !slices.Contains(allowedImageTypes, mime) {
		httperr.BadRequest(c, "unsupported_file_type", "Only image files (jpeg, jpg, png, gif) are allowed.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Write(c, httperr.Internal("upload_read_failed", err))
		return
	}
	defer f.Close()

	data, err := h.transcode(f)
	if err != nil {
		h.log.Info("image transcode rejected", zap.String("filename", fh.Filename), zap.Error(err))
		httperr.BadRequest(c, "invalid_image", "The uploaded file is not a readable image.")
		return
	}

	key := fmt.Sprintf("salon-%d-%d.webp", h.now().UnixMilli(), rand.IntN(1_000_000_000))
	url, err := h.store.Put(c.Request.Context(), key, "image/webp", data)
	if err != nil {
		h.log.Error("image store failed", zap.String("key", key), zap.Error(err))
		httperr.Write(c, httperr.Upstream("upload_failed", "Failed to store image.", err))
		return
	}

	httpresp.OK(c, gin.H{
		"message":  "Image uploaded successfully.",
		"imageUrl": url,
	})
}
