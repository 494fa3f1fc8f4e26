package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"text/tabwriter"

	"github.com/datapipe/xzreader/internal/compression"
	"github.com/datapipe/xzreader/internal/datapipe"
	"github.com/datapipe/xzreader/pkg/storages/storage"
	"github.com/datapipe/xzreader/utility"
	"github.com/jedib0t/go-pretty/table"
)

type StreamInfo struct {
	SourceName       string `json:"source_name"`
	Name             string `json:"name"`
	DecompressedSize int64  `json:"decompressed_size"`
}

// GetStreamInfos decodes every matching object of folder to measure it.
// Nothing is kept in memory besides the sizes.
func GetStreamInfos(folder storage.Folder, decompressor compression.Decompressor,
	opts ...datapipe.Option) ([]StreamInfo, error) {
	pipe, names, err := NewFolderPipe(folder, decompressor, opts...)
	if err != nil {
		return nil, err
	}

	infos := make([]StreamInfo, 0, len(names))
	iterator := pipe.Traverse()
	for {
		stream, err := iterator.Produce()
		if err == io.EOF {
			return infos, nil
		}
		if err != nil {
			closeFailedSource(iterator)
			return infos, err
		}
		size, err := measureStream(stream)
		if err != nil {
			return infos, err
		}
		infos = append(infos, StreamInfo{
			SourceName:       iterator.Source().Name,
			Name:             stream.Name,
			DecompressedSize: size,
		})
	}
}

func measureStream(stream datapipe.LabeledStream) (int64, error) {
	defer utility.LoggedClose(stream, "failed to close "+stream.Name)
	return io.Copy(ioutil.Discard, stream.Stream)
}

func HandleStreamList(
	getStreamsFunc func() ([]StreamInfo, error),
	writeStreamListFunc func([]StreamInfo) error,
	logging Logging,
) {
	streams, err := getStreamsFunc()
	logging.ErrorLogger.FatalOnError(err)
	if len(streams) == 0 {
		logging.InfoLogger.Println("No streams found")
		return
	}
	logging.ErrorLogger.FatalOnError(writeStreamListFunc(streams))
}

func WriteStreamList(streams []StreamInfo, output io.Writer) error {
	writer := tabwriter.NewWriter(output, 0, 0, 1, ' ', 0)
	_, err := fmt.Fprintln(writer, "source\tname\tdecompressed_size")
	if err != nil {
		return err
	}
	for _, stream := range streams {
		_, err = fmt.Fprintf(writer, "%v\t%v\t%v\n", stream.SourceName, stream.Name, stream.DecompressedSize)
		if err != nil {
			return err
		}
	}
	return writer.Flush()
}

func WritePrettyStreamList(streams []StreamInfo, output io.Writer) error {
	writer := table.NewWriter()
	writer.SetOutputMirror(output)
	writer.AppendHeader(table.Row{"#", "Source", "Name", "Decompressed size"})
	for i, stream := range streams {
		writer.AppendRow(table.Row{i, stream.SourceName, stream.Name, stream.DecompressedSize})
	}
	writer.Render()
	return nil
}

func WriteAsJSON(data interface{}, output io.Writer, pretty bool) error {
	var bytes []byte
	var err error
	if pretty {
		bytes, err = json.MarshalIndent(data, "", "    ")
	} else {
		bytes, err = json.Marshal(data)
	}
	if err != nil {
		return err
	}
	_, err = output.Write(bytes)
	return err
}
