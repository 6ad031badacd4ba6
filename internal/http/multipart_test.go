package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lettahttp "github.com/fivetwenty-io/letta-client/internal/http"
	"github.com/fivetwenty-io/letta-client/pkg/letta"
)

func TestClient_MultipartBody(t *testing.T) {
	t.Parallel()

	t.Run("fields and files are encoded", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.True(t, strings.HasPrefix(request.Header.Get("Content-Type"), "multipart/form-data; boundary="))
			assert.NoError(t, request.ParseMultipartForm(1<<20))
			assert.Equal(t, "handbook", request.FormValue("source"))

			file, header, err := request.FormFile("file")
			if assert.NoError(t, err) {
				defer file.Close()

				assert.Equal(t, `odd "name".txt`, header.Filename)
				assert.Equal(t, "text/plain", header.Header.Get("Content-Type"))

				content, _ := io.ReadAll(file)
				assert.Equal(t, "streamed", string(content))
			}

			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := lettahttp.NewClient(server.URL, letta.NoAuth())

		_, err := client.Do(context.Background(), &lettahttp.Request{
			Method: http.MethodPost,
			Path:   "v1/upload",
			Body: &lettahttp.MultipartBody{
				Fields: map[string]string{"source": "handbook"},
				Files: []lettahttp.FileField{{
					FieldName:   "file",
					FileName:    `odd "name".txt`,
					ContentType: "text/plain",
					Reader:      strings.NewReader("streamed"),
				}},
			},
		})
		require.NoError(t, err)
	})

	t.Run("uploads are not retried on 5xx", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)

			file, _, err := request.FormFile("file")
			if assert.NoError(t, err) {
				content, _ := io.ReadAll(file)
				assert.Equal(t, "payload", string(content))
				_ = file.Close()
			}

			writer.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := lettahttp.NewClient(server.URL, letta.NoAuth(),
			lettahttp.WithRetryConfig(2, time.Millisecond, 5*time.Millisecond),
			lettahttp.WithRetryOn5xx(true),
		)

		_, err := client.Do(context.Background(), &lettahttp.Request{
			Method: http.MethodPost,
			Path:   "v1/upload",
			Body: &lettahttp.MultipartBody{Files: []lettahttp.FileField{{
				FieldName: "file",
				FileName:  "payload.bin",
				Reader:    strings.NewReader("payload"),
			}}},
		})
		require.Error(t, err)
		assert.Equal(t, letta.KindAPI, letta.KindOf(err))
		assert.Equal(t, int32(1), attempts.Load())
	})
}
