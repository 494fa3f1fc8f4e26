package internal_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/datapipe/xzreader/internal"
	"github.com/datapipe/xzreader/internal/compression"
	"github.com/datapipe/xzreader/internal/compression/gzip"
	"github.com/datapipe/xzreader/internal/compression/xz"
	"github.com/datapipe/xzreader/internal/compression/zstd"
	"github.com/datapipe/xzreader/internal/datapipe"
	"github.com/datapipe/xzreader/pkg/storages/storage"
	"github.com/datapipe/xzreader/testtools"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readObject(t *testing.T, folder storage.Folder, name string) string {
	reader, err := folder.ReadObject(name)
	require.NoError(t, err)
	defer reader.Close()
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	return string(data)
}

func TestHandleExtract(t *testing.T) {
	src := testtools.CreateXzStorageFolder(t, map[string]string{
		"a.txt":     "first",
		"dir/b.txt": "second",
	})
	dst := testtools.MakeDefaultInMemoryStorageFolder()

	extracted, err := internal.HandleExtract(context.Background(), src, dst, xz.Decompressor{})
	require.NoError(t, err)
	assert.Equal(t, 2, extracted)

	assert.Equal(t, "first", readObject(t, dst, "a.txt"))
	assert.Equal(t, "second", readObject(t, dst, "dir/b.txt"))
	exists, err := dst.Exists("README")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestHandleExtract_StopsAtCorruptedStream(t *testing.T) {
	src := testtools.CreateXzStorageFolder(t, map[string]string{"a.txt": "first", "c.txt": "third"})
	require.NoError(t, src.PutObject("b.txt.xz", strings.NewReader("definitely not xz")))
	dst := testtools.MakeDefaultInMemoryStorageFolder()

	extracted, err := internal.HandleExtract(context.Background(), src, dst, xz.Decompressor{})
	assert.IsType(t, datapipe.DecodeFailureError{}, err)
	assert.Equal(t, 1, extracted)

	exists, err := dst.Exists("c.txt")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestHandleExtract_StrictSuffix(t *testing.T) {
	src := testtools.CreateXzStorageFolder(t, map[string]string{"fox": "jumps"})
	dst := testtools.MakeDefaultInMemoryStorageFolder()

	_, err := internal.HandleExtract(context.Background(), src, dst, xz.Decompressor{}, datapipe.WithStrictSuffix(true))
	require.NoError(t, err)
	assert.Equal(t, "jumps", readObject(t, dst, "fox"))
}

func TestGetStreamInfos(t *testing.T) {
	src := testtools.CreateXzStorageFolder(t, map[string]string{
		"a.txt": "first",
		"b.log": "second!",
	})

	infos, err := internal.GetStreamInfos(src, xz.Decompressor{})
	require.NoError(t, err)
	assert.Equal(t, []internal.StreamInfo{
		{SourceName: "a.txt.xz", Name: "a.txt", DecompressedSize: 5},
		{SourceName: "b.log.xz", Name: "b.log", DecompressedSize: 7},
	}, infos)
}

func TestWriteStreamList(t *testing.T) {
	var output bytes.Buffer
	err := internal.WriteStreamList([]internal.StreamInfo{{SourceName: "a.txt.xz", Name: "a.txt", DecompressedSize: 5}}, &output)
	require.NoError(t, err)
	assert.Equal(t, "source   name  decompressed_size\na.txt.xz a.txt 5\n", output.String())
}

func TestWritePrettyStreamList(t *testing.T) {
	var output bytes.Buffer
	err := internal.WritePrettyStreamList([]internal.StreamInfo{{SourceName: "a.txt.xz", Name: "a.txt", DecompressedSize: 5}}, &output)
	require.NoError(t, err)
	assert.Contains(t, output.String(), "a.txt.xz")
	assert.Contains(t, output.String(), "DECOMPRESSED SIZE")
}

func TestWriteAsJSON(t *testing.T) {
	var output bytes.Buffer
	err := internal.WriteAsJSON([]internal.StreamInfo{{SourceName: "a.xz", Name: "a", DecompressedSize: 1}}, &output, false)
	require.NoError(t, err)
	assert.Equal(t, `[{"source_name":"a.xz","name":"a","decompressed_size":1}]`, output.String())
}

type testInfoLogger struct {
	lines []string
}

func (logger *testInfoLogger) Println(v ...interface{}) {
	logger.lines = append(logger.lines, fmt.Sprintln(v...))
}

type testErrorLogger struct {
	err error
}

func (logger *testErrorLogger) FatalOnError(err error) {
	if err != nil {
		logger.err = err
	}
}

func TestHandleStreamList_Empty(t *testing.T) {
	infoLogger := &testInfoLogger{}
	written := false
	internal.HandleStreamList(
		func() ([]internal.StreamInfo, error) { return nil, nil },
		func([]internal.StreamInfo) error { written = true; return nil },
		internal.Logging{InfoLogger: infoLogger, ErrorLogger: &testErrorLogger{}},
	)
	assert.False(t, written)
	assert.Len(t, infoLogger.lines, 1)
}

func TestHandleStreamList_Writes(t *testing.T) {
	var got []internal.StreamInfo
	internal.HandleStreamList(
		func() ([]internal.StreamInfo, error) { return []internal.StreamInfo{{Name: "a"}}, nil },
		func(streams []internal.StreamInfo) error { got = streams; return nil },
		internal.Logging{InfoLogger: &testInfoLogger{}, ErrorLogger: &testErrorLogger{}},
	)
	assert.Equal(t, []internal.StreamInfo{{Name: "a"}}, got)
}

func TestHandleCat(t *testing.T) {
	src := testtools.CreateXzStorageFolder(t, map[string]string{"a.txt": "first"})
	var output bytes.Buffer

	require.NoError(t, internal.HandleCat(src, "a.txt.xz", xz.Decompressor{}, &output))
	assert.Equal(t, "first", output.String())
}

func TestHandleCat_Missing(t *testing.T) {
	src := testtools.MakeDefaultInMemoryStorageFolder()
	err := internal.HandleCat(src, "nope.xz", xz.Decompressor{}, &bytes.Buffer{})
	assert.IsType(t, storage.ObjectNotFoundError{}, err)
}

func TestHandleCat_Corrupted(t *testing.T) {
	src := testtools.MakeDefaultInMemoryStorageFolder()
	require.NoError(t, src.PutObject("bad.xz", strings.NewReader("garbage")))
	err := internal.HandleCat(src, "bad.xz", xz.Decompressor{}, &bytes.Buffer{})
	assert.IsType(t, datapipe.DecodeFailureError{}, err)
}

func TestHandleCompress_RoundTrip(t *testing.T) {
	for _, compressor := range []compression.Compressor{xz.Compressor{}, zstd.Compressor{}, gzip.Compressor{}} {
		extension := compressor.FileExtension()
		t.Run(extension, func(t *testing.T) {
			plain := testtools.MakeDefaultInMemoryStorageFolder()
			require.NoError(t, plain.PutObject("a.txt", strings.NewReader("first")))
			require.NoError(t, plain.PutObject("dir/b.txt", strings.NewReader("second")))
			compressed := testtools.MakeDefaultInMemoryStorageFolder()

			count, err := internal.HandleCompress(context.Background(), plain, compressed, compressor)
			require.NoError(t, err)
			assert.Equal(t, 2, count)

			var output bytes.Buffer
			decompressor := compression.FindDecompressor(extension)
			require.NoError(t, internal.HandleCat(compressed, "dir/b.txt."+extension, decompressor, &output))
			assert.Equal(t, "second", output.String())
		})
	}
}

func TestHandleCompress_UploadFailure(t *testing.T) {
	plain := testtools.MakeDefaultInMemoryStorageFolder()
	require.NoError(t, plain.PutObject("a.txt", strings.NewReader("first")))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	count, err := internal.HandleCompress(ctx, plain, testtools.MakeDefaultInMemoryStorageFolder(), xz.Compressor{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, count)
}

// orderedReadCloser logs its reads and its close, holding the first read
// until release is closed.
type orderedReadCloser struct {
	mutex   sync.Mutex
	events  []string
	release chan struct{}
	served  bool
}

func (reader *orderedReadCloser) log(event string) {
	reader.mutex.Lock()
	defer reader.mutex.Unlock()
	reader.events = append(reader.events, event)
}

func (reader *orderedReadCloser) Read(p []byte) (int, error) {
	reader.log("read")
	if reader.served {
		return 0, io.EOF
	}
	<-reader.release
	reader.served = true
	return copy(p, "first"), nil
}

func (reader *orderedReadCloser) Close() error {
	reader.log("close")
	return nil
}

type orderedReadFolder struct {
	storage.Folder
	reader *orderedReadCloser
}

func (folder *orderedReadFolder) ReadObject(string) (io.ReadCloser, error) {
	return folder.reader, nil
}

type refusingFolder struct {
	storage.Folder
}

func (folder refusingFolder) PutObjectWithContext(context.Context, string, io.Reader) error {
	return errors.New("upload refused")
}

func TestHandleCompress_ClosesSourceAfterCompressing(t *testing.T) {
	plain := testtools.MakeDefaultInMemoryStorageFolder()
	require.NoError(t, plain.PutObject("a.txt", strings.NewReader("first")))
	reader := &orderedReadCloser{release: make(chan struct{})}
	src := &orderedReadFolder{Folder: plain, reader: reader}
	time.AfterFunc(20*time.Millisecond, func() { close(reader.release) })

	_, err := internal.HandleCompress(context.Background(), src, refusingFolder{testtools.MakeDefaultInMemoryStorageFolder()}, xz.Compressor{})
	assert.EqualError(t, errors.Cause(err), "upload refused")

	reader.mutex.Lock()
	defer reader.mutex.Unlock()
	require.NotEmpty(t, reader.events)
	assert.Equal(t, "close", reader.events[len(reader.events)-1])
	assert.Equal(t, 1, strings.Count(strings.Join(reader.events, " "), "close"))
}

type trackingFolder struct {
	storage.Folder
	readers map[string]*testtools.TrackingReadCloser
}

func newTrackingFolder(folder storage.Folder) *trackingFolder {
	return &trackingFolder{Folder: folder, readers: map[string]*testtools.TrackingReadCloser{}}
}

func (folder *trackingFolder) ReadObject(objectRelativePath string) (io.ReadCloser, error) {
	data := readObjectBytes(folder.Folder, objectRelativePath)
	reader := testtools.NewTrackingReadCloser(data)
	folder.readers[objectRelativePath] = reader
	return reader, nil
}

func readObjectBytes(folder storage.Folder, name string) []byte {
	reader, err := folder.ReadObject(name)
	if err != nil {
		return nil
	}
	defer reader.Close()
	data, _ := io.ReadAll(reader)
	return data
}

func corruptedXzFolder(t *testing.T) *trackingFolder {
	src := testtools.CreateXzStorageFolder(t, map[string]string{"a.txt": "first"})
	require.NoError(t, src.PutObject("b.txt.xz", strings.NewReader("definitely not xz")))
	return newTrackingFolder(src)
}

func TestHandleExtract_ClosesCorruptedSource(t *testing.T) {
	src := corruptedXzFolder(t)

	_, err := internal.HandleExtract(context.Background(), src, testtools.MakeDefaultInMemoryStorageFolder(), xz.Decompressor{})
	assert.IsType(t, datapipe.DecodeFailureError{}, err)

	require.Len(t, src.readers, 2)
	for name, reader := range src.readers {
		assert.True(t, reader.Closed(), name)
	}
}

func TestGetStreamInfos_ClosesCorruptedSource(t *testing.T) {
	src := corruptedXzFolder(t)

	infos, err := internal.GetStreamInfos(src, xz.Decompressor{})
	assert.IsType(t, datapipe.DecodeFailureError{}, err)
	assert.Len(t, infos, 1)

	require.Len(t, src.readers, 2)
	for name, reader := range src.readers {
		assert.True(t, reader.Closed(), name)
	}
}

// growingFolder gains an object every time it is listed.
type growingFolder struct {
	storage.Folder
	payload  []byte
	listings int
}

func (folder *growingFolder) ListFolder() ([]storage.Object, []storage.Folder, error) {
	folder.listings++
	if folder.listings > 1 {
		name := fmt.Sprintf("%d.txt.xz", folder.listings)
		if err := folder.Folder.PutObject(name, bytes.NewReader(folder.payload)); err != nil {
			return nil, nil, err
		}
	}
	return folder.Folder.ListFolder()
}

func newGrowingFolder(t *testing.T) *growingFolder {
	return &growingFolder{
		Folder:  testtools.CreateXzStorageFolder(t, map[string]string{"a.txt": "first"}),
		payload: testtools.XzPayload(t),
	}
}

func TestGetStreamInfos_ListsFolderOnce(t *testing.T) {
	src := newGrowingFolder(t)

	infos, err := internal.GetStreamInfos(src, xz.Decompressor{})
	require.NoError(t, err)
	assert.Equal(t, 1, src.listings)
	assert.Equal(t, []internal.StreamInfo{
		{SourceName: "a.txt.xz", Name: "a.txt", DecompressedSize: 5},
	}, infos)
}

func TestNewFolderPipe_LengthMatchesTraversal(t *testing.T) {
	src := newGrowingFolder(t)

	pipe, names, err := internal.NewFolderPipe(src, xz.Decompressor{})
	require.NoError(t, err)
	length, err := pipe.Len()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt.xz"}, names)

	produced := 0
	require.NoError(t, datapipe.ForEach(pipe.Iter(), func(item interface{}) error {
		produced++
		return item.(datapipe.LabeledStream).Close()
	}))
	assert.Equal(t, length, produced)
}
