package audit

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golden-vcr/gap-auth/entry"
	"github.com/golden-vcr/gap-auth/hmac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Hook(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	t.Run("rejected requests are recorded with their request ID", func(t *testing.T) {
		recorder := &memoryRecorder{}
		mw, err := hmac.Middleware(hmac.MiddlewareConfig{
			Secret:   "foobar",
			OnReject: Hook(recorder, time.Second),
		})
		require.NoError(t, err)
		h := entry.Middleware(slog.Default())(mw(ok))

		req := httptest.NewRequest(http.MethodGet, "/foo/bar", nil)
		req.Header.Set("x-request-id", "req-1")
		req.Header.Set(hmac.HeaderSignature, "unsupported abc=")
		res := httptest.NewRecorder()
		h.ServeHTTP(res, req)

		assert.Equal(t, http.StatusUnauthorized, res.Code)
		require.Len(t, recorder.rejections, 1)
		assert.Equal(t, "UNSUPPORTED_ALGORITHM", recorder.rejections[0].Result)
		assert.Equal(t, "req-1", recorder.rejections[0].RequestId)
		assert.Equal(t, "unsupported abc=", recorder.rejections[0].Header)
	})
	t.Run("accepted requests are not recorded", func(t *testing.T) {
		recorder := &memoryRecorder{}
		mw, err := hmac.Middleware(hmac.MiddlewareConfig{
			Secret:   "foobar",
			OnReject: Hook(recorder, time.Second),
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/foo/bar", nil)
		req.Header.Set("Date", "2015-09-29")
		req.Header.Set("Cookie", "foo; bar; baz=quux")
		req.Header.Set("Gap-Auth", "mbland")
		req.Header.Set(hmac.HeaderSignature, "sha1 JBQJcmSTteQyHZXFUA9glis9BIk=")
		res := httptest.NewRecorder()
		mw(ok).ServeHTTP(res, req)

		assert.Equal(t, http.StatusOK, res.Code)
		assert.Empty(t, recorder.rejections)
	})
	t.Run("recorder failure is logged and the request is still rejected", func(t *testing.T) {
		var buf bytes.Buffer
		recorder := &memoryRecorder{err: errors.New("database unavailable")}
		mw, err := hmac.Middleware(hmac.MiddlewareConfig{
			Secret:   "foobar",
			OnReject: Hook(recorder, time.Second),
		})
		require.NoError(t, err)
		h := entry.Middleware(slog.New(slog.NewJSONHandler(&buf, nil)))(mw(ok))

		res := httptest.NewRecorder()
		h.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/foo/bar", nil))

		assert.Equal(t, http.StatusUnauthorized, res.Code)
		assert.Contains(t, buf.String(), "Failed to record rejected request")
		assert.Contains(t, buf.String(), "database unavailable")
	})
}
