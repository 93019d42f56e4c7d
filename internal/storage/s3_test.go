package storage

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	miniogo "github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/minio"
)

func TestValidateContentType(t *testing.T) {
	tests := []struct {
		contentType string
		wantErr     bool
	}{
		{"image/png", false},
		{"application/pdf", false},
		{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", false},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", false},
		{"audio/wav", true},
		{"text/plain", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			err := validateContentType(tt.contentType)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedContentType)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewS3Service_RequiresBucket(t *testing.T) {
	_, err := NewS3Service(S3Config{})
	assert.Error(t, err)
}

func TestNewS3Service_Defaults(t *testing.T) {
	svc, err := NewS3Service(S3Config{
		Bucket:    "exports",
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	})
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, svc.URLExpiry())
}

func TestUploadFile_RejectsUnsupportedType(t *testing.T) {
	svc, err := NewS3Service(S3Config{Bucket: "exports", Endpoint: "localhost:9000"})
	require.NoError(t, err)

	err = svc.UploadFile(context.Background(), "exports/x.wav", "audio/wav", []byte("x"))
	assert.ErrorIs(t, err, ErrUnsupportedContentType)
}

// TestExportPublishing_Integration round-trips an export through MinIO
func TestExportPublishing_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	minioContainer, err := minio.Run(ctx,
		"minio/minio:RELEASE.2024-10-29T16-01-48Z",
		minio.WithUsername("minioadmin"),
		minio.WithPassword("minioadmin"),
	)
	testcontainers.CleanupContainer(t, minioContainer)
	require.NoError(t, err)

	endpoint, err := minioContainer.ConnectionString(ctx)
	require.NoError(t, err)

	bucketName := "reynolds-test-" + uuid.New().String()[:8]
	admin, err := miniogo.New(endpoint, &miniogo.Options{
		Creds:  miniocreds.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	require.NoError(t, err)
	require.NoError(t, admin.MakeBucket(ctx, bucketName, miniogo.MakeBucketOptions{}))

	svc, err := NewS3Service(S3Config{
		Bucket:    bucketName,
		Endpoint:  endpoint,
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		URLExpiry: 5 * time.Minute,
	})
	require.NoError(t, err)

	prefix := "exports/" + uuid.New().String() + "/"
	key := prefix + uuid.New().String() + "/Reynolds_Report.pdf"
	other := "exports/" + uuid.New().String() + "/x/Reynolds_velocity.png"
	payload := []byte("%PDF-1.3 test payload")

	require.NoError(t, svc.UploadFile(ctx, key, "application/pdf", payload))
	require.NoError(t, svc.UploadFile(ctx, other, "image/png", []byte("png")))

	keys, err := svc.ListFiles(ctx, prefix)
	require.NoError(t, err)
	assert.Equal(t, []string{key}, keys)

	url, err := svc.GenerateDownloadURL(ctx, key)
	require.NoError(t, err)

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, body)

	require.NoError(t, svc.DeleteFile(ctx, key))
	keys, err = svc.ListFiles(ctx, prefix)
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = admin.StatObject(ctx, bucketName, other, miniogo.StatObjectOptions{})
	assert.NoError(t, err, "objects outside the prefix are untouched")
}
