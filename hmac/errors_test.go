package hmac

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NewValidationError(t *testing.T) {
	tests := []struct {
		name     string
		result   Result
		header   string
		computed string
		want     string
	}{
		{
			"result name only",
			ResultNoSignature,
			"",
			"",
			"oauth2_proxy request validation failed: NO_SIGNATURE",
		},
		{
			"header is appended if non-empty",
			ResultInvalidFormat,
			"should be algorithm and digest value",
			"",
			`oauth2_proxy request validation failed: INVALID_FORMAT header: "should be algorithm and digest value"`,
		},
		{
			"computed is appended after header",
			ResultMismatch,
			"sha1 abc=",
			"sha1 def=",
			`oauth2_proxy request validation failed: MISMATCH header: "sha1 abc=" computed: "sha1 def="`,
		},
		{
			"computed is appended without header",
			ResultMismatch,
			"",
			"sha1 def=",
			`oauth2_proxy request validation failed: MISMATCH computed: "sha1 def="`,
		},
		{
			"values are quoted verbatim",
			ResultInvalidFormat,
			`a "b" c`,
			"",
			`oauth2_proxy request validation failed: INVALID_FORMAT header: "a "b" c"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.result, tt.header, tt.computed)
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, tt.result, err.Result)
			assert.Equal(t, tt.header, err.Header)
			assert.Equal(t, tt.computed, err.Computed)
		})
	}
}

func Test_ValidationError_Error(t *testing.T) {
	t.Run("message reflects the current field values", func(t *testing.T) {
		err := NewValidationError(ResultMismatch, "sha1 abc=", "sha1 def=")
		err.Result = ResultInvalidFormat
		err.Computed = ""
		assert.Equal(t, `oauth2_proxy request validation failed: INVALID_FORMAT header: "sha1 abc="`, err.Error())
	})
	t.Run("zero value renders without a result name", func(t *testing.T) {
		assert.Equal(t, "oauth2_proxy request validation failed: ", (&ValidationError{}).Error())
	})
}

func Test_ValidationError_Is(t *testing.T) {
	var err error = NewValidationError(ResultMismatch, "a", "b")
	wrapped := fmt.Errorf("request rejected: %w", err)
	assert.ErrorIs(t, wrapped, ErrVerificationFailed)

	var validationErr *ValidationError
	assert.True(t, errors.As(wrapped, &validationErr))
	assert.Equal(t, ResultMismatch, validationErr.Result)

	assert.NotErrorIs(t, errors.New("something else"), ErrVerificationFailed)
}
