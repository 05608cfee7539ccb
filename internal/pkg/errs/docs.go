// Package errs provides the error types shared by the ordering core and its adapters.
//
// Every type follows the same shape:
//   - a sentinel error variable (e.g., ErrValueIsRequired) that errors.Is can match
//   - a struct carrying the details of the failure
//   - constructors with and without a cause
//   - Unwrap returning the sentinel
//
// RemoteRequestFailedError is the odd one out: its Error method returns the message exactly as
// the remote API described the failure, because that text is shown to staff and customers as is.
package errs
