package computils

import "io"

// UntilEOFReader stops calling the underlying reader once it has reported io.EOF.
// Some decoders keep reading after the end of the frame and would otherwise
// block on sources that are not closed yet.
type UntilEOFReader struct {
	underlying io.Reader
	isEOF      bool
}

func NewUntilEOFReader(underlying io.Reader) *UntilEOFReader {
	return &UntilEOFReader{underlying: underlying}
}

func (reader *UntilEOFReader) Read(p []byte) (n int, err error) {
	if reader.isEOF {
		return 0, io.EOF
	}
	n, err = reader.underlying.Read(p)
	if err == io.EOF {
		reader.isEOF = true
	}
	return
}
