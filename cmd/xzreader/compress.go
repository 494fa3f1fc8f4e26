package xzreader

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/datapipe/xzreader/internal"
	"github.com/spf13/cobra"
	"github.com/wal-g/tracelog"
)

const compressShortDescription = "Compress every object of a folder into the source storage"

// compressCmd represents the compress command
var compressCmd = &cobra.Command{
	Use:   "compress plain_prefix",
	Short: compressShortDescription,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		plain, err := internal.ConfigureFolderFromPrefix(args[0])
		tracelog.ErrorLogger.FatalOnError(err)
		dst, err := configureSource()
		tracelog.ErrorLogger.FatalOnError(err)
		compressor, err := internal.ConfigureCompressor()
		tracelog.ErrorLogger.FatalOnError(err)

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		_, err = internal.HandleCompress(ctx, plain, dst, compressor)
		tracelog.ErrorLogger.FatalOnError(err)
	},
}

func init() {
	RootCmd.AddCommand(compressCmd)
}
