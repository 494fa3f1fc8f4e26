package testtools

import (
	"bytes"
	"testing"

	"github.com/datapipe/xzreader/internal/compression"
	"github.com/datapipe/xzreader/internal/compression/xz"
	"github.com/stretchr/testify/require"
)

func Compress(t *testing.T, compressor compression.Compressor, data []byte) []byte {
	var buffer bytes.Buffer
	writer := compressor.NewWriter(&buffer)
	_, err := writer.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return buffer.Bytes()
}

func CompressXz(t *testing.T, data []byte) []byte {
	return Compress(t, xz.Compressor{}, data)
}

// XzPayload is the xz encoding of "hello".
func XzPayload(t *testing.T) []byte {
	return CompressXz(t, []byte("hello"))
}
