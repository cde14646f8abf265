package devserver

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

// maxUploadSize caps a single upload request at 16MB
const maxUploadSize = 16 << 20

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// uploadImages stores posted image files and returns their served URLs.
// Single uploads arrive under the "file" field; batches under "file0",
// "file1", and so on.
func (s *Server) uploadImages(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxUploadSize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"details": "Invalid multipart request"}})
		return
	}

	form := c.Request.MultipartForm
	var headers []*multipart.FileHeader
	if single, ok := form.File["file"]; ok {
		headers = append(headers, single...)
	} else {
		for i := 0; ; i++ {
			batch, ok := form.File[fmt.Sprintf("file%d", i)]
			if !ok {
				break
			}
			headers = append(headers, batch...)
		}
	}

	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"details": "No files in request"}})
		return
	}

	urls := make([]string, 0, len(headers))
	for _, header := range headers {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !allowedImageExtensions[ext] {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"details": fmt.Sprintf("Unsupported file type %q", ext)}})
			return
		}

		// ULID filenames avoid collisions and leak nothing about the source
		name := ulid.Make().String() + ext
		dest := filepath.Join(s.config.Uploads.Dir, name)
		if err := c.SaveUploadedFile(header, dest); err != nil {
			s.logger.Error().Err(err).Str("file", header.Filename).Msg("Failed to save upload")
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"details": "Failed to save upload"}})
			return
		}
		urls = append(urls, "/images/"+name)
	}

	s.logger.Info().Int("count", len(urls)).Msg("Images uploaded")

	respondData(c, http.StatusOK, gin.H{
		"imageUrl":  urls[0],
		"imageUrls": urls,
	})
}
