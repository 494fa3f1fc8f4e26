//go:build lzo
// +build lzo

package compression

import "github.com/datapipe/xzreader/internal/compression/lzo"

func init() {
	Decompressors = append(Decompressors, lzo.Decompressor{})
	decompressorsByAlgorithm[lzo.AlgorithmName] = lzo.Decompressor{}
}
