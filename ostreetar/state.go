package ostreetar

import (
	"archive/tar"
	"context"

	"github.com/ostreetar/ostree-tar/internal/exportlog"
	"github.com/sirupsen/logrus"
)

// runState is the mutable state owned by a single export run: the four
// dedup sets and the scaffold's idempotency flag. Nothing here outlives the
// run, and nothing outside this package ever touches it, so no locking is
// required.
type runState struct {
	ctx    context.Context
	tw     *tar.Writer
	repo   Repository
	opts   ExportOptions
	stats  *stats
	buf    []byte // reused streamBufSize read buffer

	wroteScaffold bool
	dirTrees      checksumSet
	dirMetas      checksumSet
	content       checksumSet
	xattrs        checksumSet
}

func newRunState(ctx context.Context, tw *tar.Writer, repo Repository, opts ExportOptions) *runState {
	return &runState{
		ctx:      ctx,
		tw:       tw,
		repo:     repo,
		opts:     opts,
		stats:    newStats(),
		buf:      make([]byte, streamBufSize),
		dirTrees: newChecksumSet(),
		dirMetas: newChecksumSet(),
		content:  newChecksumSet(),
		xattrs:   newChecksumSet(),
	}
}

// checkCancelled performs the non-blocking cancellation poll required at
// dirtree boundaries: a plain ctx.Err() check, never a select that could
// itself suspend the walk.
func (s *runState) checkCancelled() error {
	if err := s.ctx.Err(); err != nil {
		return cancellationError(err)
	}
	return nil
}

func (s *runState) logger() *logrus.Entry {
	return exportlog.GetLogger(s.ctx)
}
