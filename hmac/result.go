package hmac

import "fmt"

// Result classifies the outcome of validating a request's Gap-Signature: every
// validation produces exactly one Result
type Result int

const (
	// ResultNoSignature indicates that the request carried no Gap-Signature header
	ResultNoSignature Result = iota + 1

	// ResultInvalidFormat indicates that the Gap-Signature header was not of the form
	// "<algorithm> <digest>"
	ResultInvalidFormat

	// ResultUnsupportedAlgorithm indicates that the Gap-Signature header named a digest
	// algorithm that we don't support
	ResultUnsupportedAlgorithm

	// ResultMatch indicates that the presented signature is exactly the one we
	// computed: the request is authentic
	ResultMatch

	// ResultMismatch indicates that the presented signature differs from the one we
	// computed
	ResultMismatch
)

var resultNames = [...]string{
	"",
	"NO_SIGNATURE",
	"INVALID_FORMAT",
	"UNSUPPORTED_ALGORITHM",
	"MATCH",
	"MISMATCH",
}

// ResultCodeToString returns the canonical name of a result code, e.g. "MISMATCH". If
// the code is not one of the defined Result values, returns false.
func ResultCodeToString(code Result) (string, bool) {
	if code < 1 || int(code) >= len(resultNames) {
		return "", false
	}
	return resultNames[code], true
}

func (r Result) String() string {
	if name, ok := ResultCodeToString(r); ok {
		return name
	}
	return fmt.Sprintf("Result(%d)", int(r))
}
