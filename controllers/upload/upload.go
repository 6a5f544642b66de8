package uploadController

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nfnt/resize"
)

// maxImageWidth bounds stored images; anything wider is scaled down
// before saving.
const maxImageWidth = 1600

// UploadDir resolves the image directory from the environment.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

func sanitizeFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)
}

// UploadImage stores a category/product/carousel image and returns its
// public URL. JPEG and PNG are re-encoded, bounded to maxImageWidth;
// other formats are stored as-is.
// POST /api/upload, multipart field "image"
func UploadImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No se proporcionó ninguna imagen"})
			return
		}

		if err := os.MkdirAll(UploadDir(), 0o755); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
			return
		}

		filename := sanitizeFilename(fileHeader.Filename)
		savePath := filepath.Join(UploadDir(), filename)
		ext := strings.ToLower(filepath.Ext(filename))

		if ext == ".jpg" || ext == ".jpeg" || ext == ".png" {
			if err := saveResized(fileHeader, savePath, ext); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
				return
			}
		} else {
			if err := c.SaveUploadedFile(fileHeader, savePath); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"url": "/uploads/" + filename})
	}
}

func saveResized(fileHeader *multipart.FileHeader, savePath, ext string) error {
	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return err
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = resize.Resize(maxImageWidth, 0, img, resize.Lanczos3)
	}

	out, err := os.Create(savePath)
	if err != nil {
		return err
	}
	defer out.Close()

	if ext == ".png" {
		return png.Encode(out, img)
	}
	return jpeg.Encode(out, img, &jpeg.Options{Quality: 85})
}
