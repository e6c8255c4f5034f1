package audit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golden-vcr/gap-auth/hmac"
	"github.com/stretchr/testify/assert"
)

// memoryRecorder is a Recorder that keeps rejections in memory so tests can inspect
// them
type memoryRecorder struct {
	mu         sync.Mutex
	rejections []Rejection
	err        error
}

func (m *memoryRecorder) Record(ctx context.Context, rejection Rejection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejections = append(m.rejections, rejection)
	return m.err
}

func newRejectedRequest() (*http.Request, *hmac.ValidationError) {
	req := httptest.NewRequest(http.MethodPost, "/foo/bar?baz=quux", nil)
	req.Header.Set(hmac.HeaderGapAuth, "mbland")
	req.Header.Set(hmac.HeaderSignature, "sha1 bogus=")
	req.RemoteAddr = "10.0.0.1:12345"
	return req, hmac.NewValidationError(hmac.ResultMismatch, "sha1 bogus=", "sha1 JBQJcmSTteQyHZXFUA9glis9BIk=")
}

func Test_NewRejection(t *testing.T) {
	req, err := newRejectedRequest()
	before := time.Now().UTC()
	rejection := NewRejection(req, err)

	assert.NotEmpty(t, rejection.Id.String())
	assert.False(t, rejection.Timestamp.Before(before))
	assert.Equal(t, "MISMATCH", rejection.Result)
	assert.Equal(t, http.MethodPost, rejection.Method)
	assert.Equal(t, "/foo/bar?baz=quux", rejection.Url)
	assert.Equal(t, "mbland", rejection.GapAuth)
	assert.Equal(t, "10.0.0.1:12345", rejection.RemoteAddr)
	assert.Equal(t, "sha1 bogus=", rejection.Header)
	assert.Equal(t, "", rejection.RequestId)
}

func Test_NewRejection_distinctIds(t *testing.T) {
	req, err := newRejectedRequest()
	assert.NotEqual(t, NewRejection(req, err).Id, NewRejection(req, err).Id)
}
