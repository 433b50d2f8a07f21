package workentry

import "errors"

var (
	// ErrNotFound means the row does not exist at all, or a scoped mutation
	// touched zero rows.
	ErrNotFound = errors.New("work entry not found")
	// ErrOutOfEditWindow means the row exists but is older than the
	// principal's editable range. Deliberately distinct from ErrNotFound.
	ErrOutOfEditWindow = errors.New("work entry is outside the editable window")
	// ErrInvalidJobReference means the supplied job code does not resolve
	// within the company.
	ErrInvalidJobReference = errors.New("unknown job code")
	// ErrInvalidRate means a caller-supplied rate is non-positive.
	ErrInvalidRate = errors.New("rate must be a positive number")
	// ErrRateResolutionFailed means stored job/tier data produced a
	// non-positive rate. This signals misconfiguration, not user error.
	ErrRateResolutionFailed = errors.New("could not resolve a positive rate from job and tier data")
	// ErrRateEditForbidden means a rate change was attempted without the
	// rate-editing capability.
	ErrRateEditForbidden = errors.New("changing rates requires the rate editing permission")
	// ErrDuplicateJobReference means the (company, ref_no) pair already
	// exists.
	ErrDuplicateJobReference = errors.New("job reference number already used")
	// ErrInvalidFees means a negative fees value was supplied.
	ErrInvalidFees = errors.New("fees must not be negative")
	// ErrInvalidNumber means a required numeric field failed to coerce.
	ErrInvalidNumber = errors.New("invalid numeric value")
)
