package libs

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadImage pushes a staged local file to Cloudinary under the given
// folder ("logos" or "products") and removes the local copy.
func UploadImage(localPath, folder string) (string, error) {
	if _, err := os.Stat(localPath); os.IsNotExist(err) {
		return "", fmt.Errorf("file not found: %s", localPath)
	}

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	var cld *cloudinary.Cloudinary
	var err error

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		cldURL := os.Getenv("CLOUDINARY_URL")
		if cldURL == "" {
			return "", fmt.Errorf("cloudinary environment variables not set")
		}
		cld, err = cloudinary.NewFromURL(cldURL)
		if err != nil {
			return "", fmt.Errorf("cloudinary init from URL fail: %v", err)
		}
	} else {
		cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
		if err != nil {
			return "", fmt.Errorf("cloudinary init from params fail: %v", err)
		}
	}

	resp, err := cld.Upload.Upload(context.Background(), localPath, uploader.UploadParams{
		PublicID: fmt.Sprintf("%s_%d", folder, time.Now().UnixNano()),
		Folder:   folder,
	})

	os.Remove(localPath)

	if err != nil {
		return "", err
	}
	if resp == nil || resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary returned an empty response")
	}

	return resp.SecureURL, nil
}
