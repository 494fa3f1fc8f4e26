package main

import (
	"github.com/datapipe/xzreader/cmd/xzreader"
)

func main() {
	xzreader.Execute()
}
