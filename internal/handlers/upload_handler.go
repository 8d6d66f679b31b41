package handlers

import (
	"net/http"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"github.com/joseph-annor/stayhub/internal/helpers"
)

const maxUploadFiles = 10

// UploadImages accepts multipart image files and returns their Cloudinary
// URLs. Used by the hotel and room forms before the JSON create call.
func UploadImages(cld *cloudinary.Cloudinary) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cld == nil {
			c.JSON(http.StatusServiceUnavailable, helpers.ErrorResponse("image uploads are not configured"))
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("multipart form required"))
			return
		}
		files := form.File["images"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("no images provided"))
			return
		}
		if len(files) > maxUploadFiles {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("too many files in one request"))
			return
		}

		folder := c.DefaultPostForm("folder", helpers.HotelFolder)
		if folder != helpers.HotelFolder && folder != helpers.RoomFolder {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid upload folder"))
			return
		}

		urls := make([]string, 0, len(files))
		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, helpers.ErrorResponse("failed to read uploaded file"))
				return
			}
			res, err := cld.Upload.Upload(c.Request.Context(), f, uploader.UploadParams{
				Folder: folder,
				Tags:   []string{"stayhub"},
			})
			f.Close()
			if err != nil {
				helpers.RespondError(c, err)
				return
			}
			urls = append(urls, res.SecureURL)
		}

		c.JSON(http.StatusCreated, helpers.SuccessResponse(gin.H{"urls": urls}, "Images uploaded successfully"))
	}
}
