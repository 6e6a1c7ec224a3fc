// Package errors provides structured error handling with machine-readable
// codes and HTTP status mapping.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Round errors
	CodeRoundIDEmpty     Code = "ROUND_ID_EMPTY"
	CodeRoundNotFound    Code = "ROUND_NOT_FOUND"
	CodeClientSeedEmpty  Code = "CLIENT_SEED_EMPTY"
	CodeSequenceMissing  Code = "SEQUENCE_MISSING"
	CodeSequenceNegative Code = "SEQUENCE_NEGATIVE"

	// Treasury errors
	CodeEntryValueInvalid  Code = "ENTRY_VALUE_INVALID"
	CodePayoutValueInvalid Code = "PAYOUT_VALUE_INVALID"
	CodeShareConfigInvalid Code = "SHARE_CONFIG_INVALID"

	// Request errors
	CodeRequestBodyInvalid Code = "REQUEST_BODY_INVALID"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad input - validation failures the caller must fix
	case CodeRoundIDEmpty,
		CodeClientSeedEmpty,
		CodeSequenceMissing,
		CodeSequenceNegative,
		CodeEntryValueInvalid,
		CodePayoutValueInvalid,
		CodeShareConfigInvalid,
		CodeRequestBodyInvalid:
		return http.StatusBadRequest

	// Not found - the round was never created, already revealed, or evicted
	case CodeRoundNotFound:
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}
