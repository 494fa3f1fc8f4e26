package internal

import (
	"context"
	"io"

	"github.com/datapipe/xzreader/internal/compression"
	"github.com/datapipe/xzreader/internal/datapipe"
	"github.com/datapipe/xzreader/internal/statistics"
	"github.com/datapipe/xzreader/pkg/storages/storage"
	"github.com/datapipe/xzreader/utility"
	"github.com/pkg/errors"
	"github.com/wal-g/tracelog"
)

// NewFolderPipe builds a pipe over every object of folder that carries the
// decompressor's extension. The pipe length is the number of such objects.
func NewFolderPipe(folder storage.Folder, decompressor compression.Decompressor,
	opts ...datapipe.Option) (*datapipe.DecompressPipe, []string, error) {
	source := datapipe.NewFolderSource(folder, datapipe.ExtensionFilter(decompressor.FileExtension()))
	listing, err := source.List()
	if err != nil {
		return nil, nil, err
	}
	opts = append([]datapipe.Option{datapipe.WithLength(len(listing.Names))}, opts...)
	return datapipe.NewDecompressPipe(listing, decompressor, opts...), listing.Names, nil
}

// HandleExtract decompresses every matching object of src into dst. It stops at
// the first failure; objects written before it stay in dst.
func HandleExtract(ctx context.Context, src, dst storage.Folder,
	decompressor compression.Decompressor, opts ...datapipe.Option) (int, error) {
	pipe, _, err := NewFolderPipe(src, decompressor, opts...)
	if err != nil {
		return 0, err
	}
	format := decompressor.FileExtension()

	extracted := 0
	iterator := pipe.Traverse()
	for {
		stream, err := iterator.Produce()
		if err == io.EOF {
			break
		}
		if err != nil {
			closeFailedSource(iterator)
			reportFailure(format, err)
			return extracted, err
		}
		if err = extractStream(ctx, dst, format, stream); err != nil {
			reportFailure(format, err)
			return extracted, err
		}
		extracted++
	}
	tracelog.InfoLogger.Printf("Extracted %d %s streams from %s\n", extracted, format, src.GetPath())
	return extracted, nil
}

func extractStream(ctx context.Context, dst storage.Folder, format string, stream datapipe.LabeledStream) error {
	defer utility.LoggedClose(stream, "failed to close "+stream.Name)

	reader := utility.NewCountingReader(stream.Stream)
	err := dst.PutObjectWithContext(ctx, stream.Name, reader)
	if err != nil {
		return errors.Wrapf(err, "failed to extract '%s'", stream.Name)
	}
	statistics.WriteStreamMetric(format, reader.Count)
	tracelog.DebugLogger.Printf("Extracted %s (%d bytes)\n", stream.Name, reader.Count)
	return nil
}

// closeFailedSource closes the compressed object a failed Produce left behind.
func closeFailedSource(iterator *datapipe.DecompressIterator) {
	source := iterator.Source()
	utility.LoggedClose(source, "failed to close "+source.Name)
}

func reportFailure(format string, err error) {
	var decodeFailure datapipe.DecodeFailureError
	if errors.As(err, &decodeFailure) {
		statistics.WriteDecodeFailureMetric(format)
	}
}
