package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

const maxImageSize = 5 << 20

// SaveTempImage validates and stages an uploaded image on local disk so it
// can be pushed to Cloudinary. The caller owns cleanup of the returned path.
func SaveTempImage(c *gin.Context, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > maxImageSize {
		return "", errors.New("file size exceeds maximum allowed size")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExtensions[ext] {
		return "", errors.New("invalid file type. Only images are allowed")
	}

	tmpDir := filepath.Join(os.TempDir(), "orderhub-uploads")
	if err := os.MkdirAll(tmpDir, os.ModePerm); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	filePath := filepath.Join(tmpDir, filename)

	if err := c.SaveUploadedFile(fileHeader, filePath); err != nil {
		return "", err
	}

	return filePath, nil
}
