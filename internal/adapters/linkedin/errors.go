package linkedin

import (
	stderrs "errors"
	"fmt"
	"strings"

	perr "postpilot/internal/platform/errors"
)

// Kind classifies every failure this adapter can return
type Kind uint8

const (
	// KindUnknown is never returned by the adapter itself
	KindUnknown Kind = iota
	// KindInvalidRequest is missing caller input, caught before any network call
	KindInvalidRequest
	// KindUpstreamAuth is a non 200 from the token or identity endpoints
	KindUpstreamAuth
	// KindMissingCredentials is an absent access token or actor urn
	KindMissingCredentials
	// KindAssetRegister is a failed or malformed upload registration
	KindAssetRegister
	// KindAssetUpload is a failed byte push to the upload url
	KindAssetUpload
	// KindNetwork is a transport failure with no http response
	KindNetwork
	// KindPublishRejected is any publish response other than 201
	KindPublishRejected
	// KindTimeout is an outbound call that ran past its deadline
	KindTimeout
)

var kindNames = map[Kind]string{
	KindUnknown:            "unknown",
	KindInvalidRequest:     "invalid request",
	KindUpstreamAuth:       "upstream auth error",
	KindMissingCredentials: "missing credentials",
	KindAssetRegister:      "asset register error",
	KindAssetUpload:        "asset upload error",
	KindNetwork:            "network error",
	KindPublishRejected:    "publish rejected",
	KindTimeout:            "timeout",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// code maps a kind onto the platform error codes and so onto http status
func (k Kind) code() perr.ErrorCode {
	switch k {
	case KindInvalidRequest:
		return perr.ErrorCodeValidation
	case KindMissingCredentials:
		return perr.ErrorCodeUnauthorized
	case KindUpstreamAuth, KindAssetRegister, KindAssetUpload, KindPublishRejected:
		return perr.ErrorCodeBadGateway
	case KindNetwork:
		return perr.ErrorCodeUnavailable
	case KindTimeout:
		return perr.ErrorCodeTimeout
	default:
		return perr.ErrorCodeUnknown
	}
}

// Error is the single error type returned by the client
// Status and Body are set when the upstream answered; Err when it did not
type Error struct {
	Kind     Kind
	Op       string
	Endpoint string
	Status   int
	Body     string
	Msg      string
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("linkedin ")
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.String())
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Body != "" {
		b.WriteString(": ")
		b.WriteString(e.Body)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the transport cause, if any
func (e *Error) Unwrap() error { return e.Err }

// ErrorCode lets perr map the kind to an http status
func (e *Error) ErrorCode() perr.ErrorCode { return e.Kind.code() }

// KindOf returns the adapter kind carried by err, or KindUnknown
func KindOf(err error) Kind {
	var e *Error
	if stderrs.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries kind k
func IsKind(err error, k Kind) bool { return err != nil && KindOf(err) == k }

func missingCredentials(op string) error {
	return &Error{Kind: KindMissingCredentials, Op: op, Msg: "access token and actor urn are required"}
}
