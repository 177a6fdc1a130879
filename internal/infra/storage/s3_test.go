package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/afritrim-api/internal/config"
)

type recorded struct {
	method      string
	path        string
	contentType string
	body        []byte
}

func fakeS3(t *testing.T, status int) (*httptest.Server, func() []recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recorded{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			body:        body,
		})
		mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	return srv, func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), reqs...)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := New(config.S3Config{Region: "us-east-1"})
	assert.Error(t, err)
}

func TestPublicURL(t *testing.T) {
	c, err := New(config.S3Config{Region: "us-east-1", Bucket: "imgs", PublicBaseURL: "https://cdn.example.com/"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/images/barber/3.webp", c.URL("images/barber/3.webp"))

	c, err = New(config.S3Config{Region: "eu-west-1", Bucket: "imgs"})
	require.NoError(t, err)
	assert.Equal(t, "https://s3.eu-west-1.amazonaws.com/imgs/a.webp", c.URL("a.webp"))
}

func TestUploadPutsObject(t *testing.T) {
	srv, requests := fakeS3(t, http.StatusOK)

	c, err := New(config.S3Config{
		Endpoint:        srv.URL,
		Region:          "us-east-1",
		Bucket:          "imgs",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)

	payload := []byte("webp-bytes")
	url, err := c.Upload(context.Background(), "images/barber/1.webp", "image/webp", bytes.NewReader(payload), int64(len(payload)))
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/imgs/images/barber/1.webp", url)

	reqs := requests()
	require.NotEmpty(t, reqs)
	assert.Equal(t, http.MethodPut, reqs[0].method)
	assert.Equal(t, "/imgs/images/barber/1.webp", reqs[0].path)
	assert.Equal(t, "image/webp", reqs[0].contentType)
}

func TestUploadSurfacesStoreErrors(t *testing.T) {
	srv, _ := fakeS3(t, http.StatusForbidden)

	c, err := New(config.S3Config{
		Endpoint:        srv.URL,
		Region:          "us-east-1",
		Bucket:          "imgs",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)

	_, err = c.Upload(context.Background(), "k", "image/webp", bytes.NewReader([]byte("x")), 1)
	assert.ErrorContains(t, err, `s3 upload "k"`)
}
