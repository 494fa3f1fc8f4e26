package internal

import (
	"io"

	"github.com/datapipe/xzreader/internal/compression"
	"github.com/datapipe/xzreader/internal/datapipe"
	"github.com/datapipe/xzreader/pkg/storages/storage"
	"github.com/datapipe/xzreader/utility"
	"github.com/pkg/errors"
)

// HandleCat writes the decompressed content of one object to output.
func HandleCat(folder storage.Folder, objectName string, decompressor compression.Decompressor,
	output io.Writer, opts ...datapipe.Option) error {
	reader, err := folder.ReadObject(objectName)
	if err != nil {
		return err
	}

	upstream := datapipe.FromStreams(datapipe.LabeledStream{Name: objectName, Stream: reader})
	iterator := datapipe.NewDecompressPipe(upstream, decompressor, opts...).Traverse()
	stream, err := iterator.Produce()
	if err != nil {
		utility.LoggedClose(reader, "failed to close "+objectName)
		reportFailure(decompressor.FileExtension(), err)
		return err
	}
	defer utility.LoggedClose(stream, "failed to close "+objectName)

	if _, err = utility.FastCopy(output, stream.Stream); err != nil {
		reportFailure(decompressor.FileExtension(), err)
		return errors.Wrapf(err, "failed to cat '%s'", objectName)
	}
	return nil
}
