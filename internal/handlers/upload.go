package handlers

import (
	"context"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"storefront/internal/config"
)

// NewCloudinary builds the upload client from configuration.
func NewCloudinary(cfg config.Config) (*cloudinary.Cloudinary, error) {
	return cloudinary.NewFromParams(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
}

type uploadResult struct {
	URL          string `json:"url"`
	PublicID     string `json:"publicId"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Format       string `json:"format"`
	ResourceType string `json:"resourceType"`
}

/*
POST /admin/api/upload
- streams every file in the batch to the media host under a fixed folder
- the first upstream rejection fails the whole batch
*/
func UploadImages(cld *cloudinary.Cloudinary, folder string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/upload"

		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "multipart/form-data required"})
			return
		}

		files := form.File["files"]
		if len(files) == 0 {
			files = form.File["file"]
		}
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		results := make([]uploadResult, 0, len(files))
		for _, header := range files {
			result, err := uploadSingle(ctx, cld, folder, header)
			if err != nil {
				log.Printf("[%s] upload failed for %s: %v", route, header.Filename, err)
				c.JSON(http.StatusBadRequest, gin.H{"error": "failed to upload image"})
				return
			}
			results = append(results, result)
		}

		log.Printf("[%s] uploaded %d files", route, len(results))
		c.JSON(http.StatusOK, results)
	}
}

func uploadSingle(ctx context.Context, cld *cloudinary.Cloudinary, folder string, header *multipart.FileHeader) (uploadResult, error) {
	file, err := header.Open()
	if err != nil {
		return uploadResult{}, err
	}
	defer file.Close()

	res, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: folder,
	})
	if err != nil {
		return uploadResult{}, err
	}

	return uploadResult{
		URL:          res.SecureURL,
		PublicID:     res.PublicID,
		Width:        res.Width,
		Height:       res.Height,
		Format:       res.Format,
		ResourceType: res.ResourceType,
	}, nil
}
