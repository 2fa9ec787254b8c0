package ostreetar

import "github.com/ostreetar/ostree-tar/internal/exporterr"

// cancellationError wraps a context error (context.Canceled or
// context.DeadlineExceeded) as the package's cancellation-kind error, so
// callers can distinguish it from ordinary failures with errors.Is.
func cancellationError(cause error) error {
	return &exporterr.Error{Kind: exporterr.KindCancellation, Msg: "export cancelled", Err: cause}
}
