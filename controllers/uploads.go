package controllers

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// ImageUploader pushes an image to the hosting service and returns its
// public URL. Tests swap in a stub.
type ImageUploader interface {
	Upload(ctx context.Context, file io.Reader) (string, error)
}

// Uploader is nil until InitCloudinary runs with credentials present.
var Uploader ImageUploader

type cloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

// InitCloudinary wires the live image host from environment credentials.
func InitCloudinary() {
	cloudName := os.Getenv("CLOUDINARY_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_SECRET_KEY")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		log.Println("Cloudinary credentials missing, image upload disabled")
		return
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		log.Println("Error initialising cloudinary:", err)
		return
	}
	Uploader = &cloudinaryUploader{cld: cld}
}

func (u *cloudinaryUploader) Upload(ctx context.Context, file io.Reader) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:     uuid.New().String(),
		ResourceType: "image",
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
