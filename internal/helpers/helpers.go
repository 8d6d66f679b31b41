package helpers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	HotelFolder = "hotels"
	RoomFolder  = "rooms"
)

// StringTrim normalizes path params: strips spaces and surrounding quotes
// which show up when clients pass values through JSON templates.
func StringTrim(s string) string {
	s = strings.TrimSpace(s)
	return strings.Trim(s, "\"'")
}

// UploadImages sends local or base64 image payloads to Cloudinary and
// returns the secure URLs in input order.
func UploadImages(ctx context.Context, cld *cloudinary.Cloudinary, images []string, folder string) ([]string, error) {
	var urls []string

	for _, file := range images {
		if strings.TrimSpace(file) == "" {
			continue
		}
		res, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
			Folder: folder,
			Tags:   []string{"stayhub"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upload image: %v", err)
		}
		urls = append(urls, res.SecureURL)
	}

	return urls, nil
}

// GenerateToken mints an opaque hex token, used for newsletter email
// verification links.
func GenerateToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}
