package xzreader

import (
	"os"

	"github.com/datapipe/xzreader/internal"
	"github.com/spf13/cobra"
	"github.com/wal-g/tracelog"
)

const catShortDescription = "Decompress a single object of the source storage to stdout"

// catCmd represents the cat command
var catCmd = &cobra.Command{
	Use:   "cat relative_object_path",
	Short: catShortDescription,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		folder, err := configureSource()
		tracelog.ErrorLogger.FatalOnError(err)
		decompressor, err := internal.ConfigureDecompressor()
		tracelog.ErrorLogger.FatalOnError(err)

		err = internal.HandleCat(folder, args[0], decompressor, os.Stdout)
		tracelog.ErrorLogger.FatalOnError(err)
	},
}

func init() {
	RootCmd.AddCommand(catCmd)
}
