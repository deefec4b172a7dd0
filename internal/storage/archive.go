package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "portops-backend/internal/config"
	"portops-backend/internal/timeutil"
)

// Archiver keeps copies of uploaded import spreadsheets in S3-compatible
// object storage so a bad merge can be replayed from the original file.
// A nil Archiver is valid and does nothing.
type Archiver struct {
	client *s3.Client
	bucket string
}

// NewArchiver builds an Archiver from config. Returns nil (no error) when
// archiving is not configured; the import path treats that as "off".
func NewArchiver(cfg *appconfig.Config) (*Archiver, error) {
	if !cfg.Import.ArchiveUploads {
		return nil, nil
	}
	if cfg.Archive.Endpoint == "" || cfg.Archive.Bucket == "" {
		log.Printf("[Archive] archive_uploads enabled but endpoint/bucket missing, archiving disabled")
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Archive.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("configure archive client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Archive.Endpoint)
	})
	return &Archiver{client: client, bucket: cfg.Archive.Bucket}, nil
}

// StoreImportFile uploads the original spreadsheet in the background.
// Failures are logged, never surfaced; the import itself already succeeded.
func (a *Archiver) StoreImportFile(vesselID, filename string, data []byte) {
	if a == nil {
		return
	}
	key := importKey(vesselID, filename, timeutil.Now())
	payload := make([]byte, len(data))
	copy(payload, data)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket: aws.String(a.bucket),
			Key:    aws.String(key),
			Body:   bytes.NewReader(payload),
		})
		if err != nil {
			log.Printf("[Archive] upload %s failed: %v", key, err)
			return
		}
		log.Printf("[Archive] stored %s (%d bytes)", key, len(payload))
	}()
}

func importKey(vesselID, filename string, now time.Time) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	return fmt.Sprintf("imports/%s/%s_%s", vesselID, now.Format("20060102T150405"), base)
}
