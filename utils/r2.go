// utils/r2.go
package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	assetClient  *s3.Client
	assetBucket  string
	assetBaseURL string
)

// InitAssetStore configures the R2 client that holds skin and upgrade icon
// images. Returns os.ErrNotExist when R2 is not configured at all, which
// callers treat as "asset uploads disabled" rather than a startup failure.
func InitAssetStore() error {
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	accessKeyID := os.Getenv("R2_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("R2_ACCESS_KEY_SECRET")
	assetBucket = os.Getenv("R2_BUCKET_NAME")
	if accountID == "" || assetBucket == "" {
		return os.ErrNotExist
	}
	assetBaseURL = os.Getenv("CDN_BASE_URL")
	if assetBaseURL == "" {
		assetBaseURL = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID),
				}, nil
			}),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to load R2 config: %w", err)
	}

	assetClient = s3.NewFromConfig(cfg)
	return nil
}

// AssetStoreEnabled reports whether InitAssetStore configured a client.
func AssetStoreEnabled() bool {
	return assetClient != nil
}

// UploadSkinAsset uploads a multipart image under skins/<name> and returns
// the public CDN URL to put in the upgrade catalog.
func UploadSkinAsset(fileHeader *multipart.FileHeader, name string) (string, error) {
	if assetClient == nil {
		return "", fmt.Errorf("asset store not configured")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	key := "skins/" + name
	_, err = assetClient.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(assetBucket),
		Key:         aws.String(key),
		Body:        buf,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}

	return fmt.Sprintf("%s/%s", assetBaseURL, key), nil
}
