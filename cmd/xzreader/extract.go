package xzreader

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/datapipe/xzreader/internal"
	"github.com/spf13/cobra"
	"github.com/wal-g/tracelog"
)

const extractShortDescription = "Decompress every stream of the source storage into destination"

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract destination_prefix",
	Short: extractShortDescription,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		destination := args[0]
		if !strings.Contains(destination, "://") {
			err := os.MkdirAll(destination, 0755)
			tracelog.ErrorLogger.FatalOnError(err)
		}

		src, err := configureSource()
		tracelog.ErrorLogger.FatalOnError(err)
		dst, err := internal.ConfigureFolderFromPrefix(destination)
		tracelog.ErrorLogger.FatalOnError(err)

		decompressor, err := internal.ConfigureDecompressor()
		tracelog.ErrorLogger.FatalOnError(err)
		opts, err := internal.ConfigurePipeOptions()
		tracelog.ErrorLogger.FatalOnError(err)

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		_, err = internal.HandleExtract(ctx, src, dst, decompressor, opts...)
		tracelog.ErrorLogger.FatalOnError(err)
	},
}

func init() {
	RootCmd.AddCommand(extractCmd)
}
