package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/766ms/Glam-rent-v1/pkg/response"
	"github.com/766ms/Glam-rent-v1/pkg/storage"
)

// maxUploadBytes caps product image uploads.
const maxUploadBytes = 8 << 20

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// AdminController holds endpoints that exist only for the back office.
type AdminController struct {
	storage *storage.Manager
}

func NewAdminController(store *storage.Manager) *AdminController {
	return &AdminController{storage: store}
}

// UploadImage stores a product image on the configured disk and returns
// its public URL.
func (c *AdminController) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		response.Error(w, http.StatusBadRequest, "Unsupported image type")
		return
	}

	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		response.Err(w, err)
		return
	}
	name := fmt.Sprintf("images/%d_%s%s", time.Now().UnixNano(), hex.EncodeToString(buf), ext)

	disk := c.storage.Disk()
	if err := disk.PutStream(name, file); err != nil {
		response.Err(w, err)
		return
	}

	response.Created(w, map[string]string{
		"path": name,
		"url":  disk.URL(name),
	})
}
