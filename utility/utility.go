package utility

import (
	"io"
	"strings"

	"github.com/wal-g/tracelog"
)

const CopiedBlockMaxSize = 1 << 20

// Empty is used for channel signaling.
type Empty struct{}

func LoggedClose(c io.Closer, errmsg string) {
	err := c.Close()
	if errmsg == "" {
		errmsg = "Problem with closing object: %v"
	}
	if err != nil {
		tracelog.ErrorLogger.Printf(errmsg+": %v", err)
	}
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func SanitizePath(path string) string {
	return strings.TrimLeft(path, "/")
}

// FastCopy copies src into dst with a buffer big enough to keep decoders busy.
// Unlike io.Copy it never takes the ReaderFrom/WriterTo shortcuts.
func FastCopy(dst io.Writer, src io.Reader) (int64, error) {
	n := int64(0)
	buf := make([]byte, CopiedBlockMaxSize)
	for {
		m, readingErr := src.Read(buf)
		if readingErr != nil && readingErr != io.EOF {
			return n, readingErr
		}
		m, writingErr := dst.Write(buf[:m])
		n += int64(m)
		if writingErr != nil || readingErr == io.EOF {
			return n, writingErr
		}
	}
}

// CountingReader counts bytes read through it into Count.
type CountingReader struct {
	io.Reader
	Count int64
}

func NewCountingReader(reader io.Reader) *CountingReader {
	return &CountingReader{Reader: reader}
}

func (r *CountingReader) Read(p []byte) (n int, err error) {
	n, err = r.Reader.Read(p)
	r.Count += int64(n)
	return
}
