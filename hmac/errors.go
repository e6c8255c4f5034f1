package hmac

import "errors"

// ErrVerificationFailed matches (via errors.Is) any *ValidationError
var ErrVerificationFailed = errors.New("verification failed")

// ValidationError describes a request that failed Gap-Signature validation. Header is
// the signature presented with the request, and Computed is the signature we expected;
// either may be empty, depending on how far validation progressed.
type ValidationError struct {
	Result   Result
	Header   string
	Computed string
}

// NewValidationError constructs the error that describes a failed validation
func NewValidationError(result Result, header, computed string) *ValidationError {
	return &ValidationError{
		Result:   result,
		Header:   header,
		Computed: computed,
	}
}

func (e *ValidationError) Error() string {
	message := "oauth2_proxy request validation failed: " + resultName(e.Result)
	if e.Header != "" {
		message += ` header: "` + e.Header + `"`
	}
	if e.Computed != "" {
		message += ` computed: "` + e.Computed + `"`
	}
	return message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrVerificationFailed
}

func resultName(r Result) string {
	name, _ := ResultCodeToString(r)
	return name
}
