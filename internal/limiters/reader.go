package limiters

import (
	"context"
	"io"

	"github.com/datapipe/xzreader/utility"
	"github.com/wal-g/tracelog"
	"golang.org/x/time/rate"
)

// DefaultBurst is added to every limit so a single full read buffer always fits.
const DefaultBurst = utility.CopiedBlockMaxSize

func NewLimiter(bytesPerSecond int64) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(bytesPerSecond), int(bytesPerSecond)+DefaultBurst)
}

// Reader waits for the limiter after every read.
type Reader struct {
	reader  io.Reader
	limiter *rate.Limiter
	ctx     context.Context
}

func NewReader(ctx context.Context, reader io.Reader, limiter *rate.Limiter) *Reader {
	return &Reader{
		reader:  reader,
		limiter: limiter,
		ctx:     ctx,
	}
}

func (r *Reader) Read(buf []byte) (int, error) {
	end := utility.Min(len(buf), r.limiter.Burst())
	n, err := r.reader.Read(buf[:end])

	if err != nil {
		limiterErr := r.limiter.WaitN(r.ctx, utility.Max(n, 0))
		if limiterErr != nil {
			tracelog.ErrorLogger.Printf("Error happened while limiting: %+v\n", limiterErr)
		}
		return n, err
	}

	err = r.limiter.WaitN(r.ctx, n)
	return n, err
}
