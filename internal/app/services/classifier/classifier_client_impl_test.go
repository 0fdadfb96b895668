package classifier

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"ptmd-service/internal/app/config"
	"ptmd-service/internal/pkg/constvars"
	"ptmd-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *httpClassifierClient {
	internalConfig := &config.InternalConfig{
		Classifier: config.Classifier{
			BaseURL:          baseURL,
			TimeoutInSeconds: 5,
		},
	}
	return NewHTTPClassifierClient(internalConfig).(*httpClassifierClient)
}

func TestClassifierPredict(t *testing.T) {
	t.Run("decodes a single-class prediction with empty string probability", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/predict", r.URL.Path)

			err := r.ParseMultipartForm(10 << 20)
			require.NoError(t, err)
			_, ok := r.MultipartForm.File["file"]
			assert.True(t, ok, "file part should be present")

			w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
			w.Write([]byte(`{"predictions":[{"class":"Normal","Probabilidade":0.93,"MultClass":"","ProbabilidadeMultClass":""}]}`))
		}))
		defer server.Close()

		prediction, err := newTestClient(server.URL).Predict(context.Background(), []byte("img"), "ear.jpg", constvars.MIMEImageJPEG)
		require.NoError(t, err)
		require.NotNil(t, prediction)
		assert.Equal(t, "Normal", prediction.Class)
		assert.InDelta(t, 0.93, prediction.Probabilidade, 1e-9)
		assert.Nil(t, prediction.MultClass)
		assert.Nil(t, prediction.ProbabilidadeMultClass)
	})

	t.Run("upper-cased Class field wins over lower-cased one", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"predictions":[{"class":"ignored","Class":"earwax","Probabilidade":0.7}]}`))
		}))
		defer server.Close()

		prediction, err := newTestClient(server.URL).Predict(context.Background(), []byte("img"), "ear.jpg", constvars.MIMEImageJPEG)
		require.NoError(t, err)
		require.NotNil(t, prediction)
		assert.Equal(t, "earwax", prediction.Class)
	})

	t.Run("decodes multi-class prediction with numeric string probability", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"predictions":[{"Class":"aom","Probabilidade":0.61,"MultClass":"csom","ProbabilidadeMultClass":"0.32"}]}`))
		}))
		defer server.Close()

		prediction, err := newTestClient(server.URL).Predict(context.Background(), []byte("img"), "ear.jpg", constvars.MIMEImageJPEG)
		require.NoError(t, err)
		require.NotNil(t, prediction)
		require.NotNil(t, prediction.MultClass)
		assert.Equal(t, "csom", *prediction.MultClass)
		require.NotNil(t, prediction.ProbabilidadeMultClass)
		assert.InDelta(t, 0.32, *prediction.ProbabilidadeMultClass, 1e-9)
	})

	t.Run("only the first prediction is consumed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"predictions":[{"Class":"aom","Probabilidade":0.8},{"Class":"csom","Probabilidade":0.1}]}`))
		}))
		defer server.Close()

		prediction, err := newTestClient(server.URL).Predict(context.Background(), []byte("img"), "ear.jpg", constvars.MIMEImageJPEG)
		require.NoError(t, err)
		require.NotNil(t, prediction)
		assert.Equal(t, "aom", prediction.Class)
	})

	t.Run("empty prediction list is not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"predictions":[]}`))
		}))
		defer server.Close()

		prediction, err := newTestClient(server.URL).Predict(context.Background(), []byte("img"), "ear.jpg", constvars.MIMEImageJPEG)
		assert.NoError(t, err)
		assert.Nil(t, prediction)
	})

	t.Run("non-2xx status maps to bad gateway", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model exploded", http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Predict(context.Background(), []byte("img"), "ear.jpg", constvars.MIMEImageJPEG)
		require.Error(t, err)

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusBadGateway, customErr.StatusCode)
	})

	t.Run("unreachable service maps to bad gateway", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		_, err := newTestClient(server.URL).Predict(context.Background(), []byte("img"), "ear.jpg", constvars.MIMEImageJPEG)
		require.Error(t, err)

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusBadGateway, customErr.StatusCode)
	})

	t.Run("malformed body maps to bad gateway", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"predictions": "not-a-list"`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Predict(context.Background(), []byte("img"), "ear.jpg", constvars.MIMEImageJPEG)
		require.Error(t, err)

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusBadGateway, customErr.StatusCode)
	})
}
