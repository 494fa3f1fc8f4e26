package xzreader

import (
	"os"

	"github.com/datapipe/xzreader/internal"
	"github.com/spf13/cobra"
	"github.com/wal-g/tracelog"
)

const (
	listShortDescription = "Print compressed streams of the source storage with their decompressed size"

	prettyFlag = "pretty"
	jsonFlag   = "json"
)

var (
	pretty bool
	asJSON bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: listShortDescription,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		folder, err := configureSource()
		tracelog.ErrorLogger.FatalOnError(err)
		decompressor, err := internal.ConfigureDecompressor()
		tracelog.ErrorLogger.FatalOnError(err)
		opts, err := internal.ConfigurePipeOptions()
		tracelog.ErrorLogger.FatalOnError(err)

		getStreamsFunc := func() ([]internal.StreamInfo, error) {
			return internal.GetStreamInfos(folder, decompressor, opts...)
		}
		writeStreamListFunc := func(streams []internal.StreamInfo) error {
			switch {
			case asJSON:
				return internal.WriteAsJSON(streams, os.Stdout, pretty)
			case pretty:
				return internal.WritePrettyStreamList(streams, os.Stdout)
			}
			return internal.WriteStreamList(streams, os.Stdout)
		}
		logging := internal.Logging{
			InfoLogger:  tracelog.InfoLogger,
			ErrorLogger: tracelog.ErrorLogger,
		}
		internal.HandleStreamList(getStreamsFunc, writeStreamListFunc, logging)
	},
}

func init() {
	RootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&pretty, prettyFlag, false, "Prints more readable output")
	listCmd.Flags().BoolVar(&asJSON, jsonFlag, false, "Prints output in json format")
}
