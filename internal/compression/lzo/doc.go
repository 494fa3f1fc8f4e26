// Package lzo decodes lzop streams. It needs cgo and liblzo2, so it is only
// compiled with the lzo build tag.
package lzo
