package audit

import (
	"net/http"
	"time"

	"github.com/golden-vcr/gap-auth/entry"
	"github.com/golden-vcr/gap-auth/hmac"
	"github.com/google/uuid"
)

// Rejection describes a single request that failed Gap-Signature validation. The
// signature we computed for the request is not recorded, and GapAuth is only the
// identity the request claimed.
type Rejection struct {
	Id         uuid.UUID `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Result     string    `json:"result"`
	Method     string    `json:"method"`
	Url        string    `json:"url"`
	GapAuth    string    `json:"gapAuth,omitempty"`
	RemoteAddr string    `json:"remoteAddr,omitempty"`
	RequestId  string    `json:"requestId,omitempty"`
	Header     string    `json:"header,omitempty"`
}

// NewRejection captures the details of a request that was rejected with the given
// validation error
func NewRejection(r *http.Request, err *hmac.ValidationError) Rejection {
	return Rejection{
		Id:         uuid.New(),
		Timestamp:  time.Now().UTC(),
		Result:     err.Result.String(),
		Method:     r.Method,
		Url:        hmac.HTTPRequest(r).URL(),
		GapAuth:    r.Header.Get(hmac.HeaderGapAuth),
		RemoteAddr: r.RemoteAddr,
		RequestId:  entry.RequestId(r.Context()),
		Header:     err.Header,
	}
}
