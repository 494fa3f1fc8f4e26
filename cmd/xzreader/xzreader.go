package xzreader

import (
	"fmt"
	"os"

	"github.com/datapipe/xzreader/internal"
	"github.com/datapipe/xzreader/internal/statistics"
	"github.com/datapipe/xzreader/pkg/storages/storage"
	"github.com/spf13/cobra"
	"github.com/wal-g/tracelog"
)

const ShortDescription = "Streaming decompressor for storage folders"

// These variables are here only to show current version. They are set in makefile during build process
var Version = "devel"
var GitRevision = "devel"
var BuildDate = "devel"

var sourcePrefix string

var RootCmd = &cobra.Command{
	Use:     "xzreader",
	Short:   ShortDescription,
	Version: Version + "\t" + GitRevision + "\t" + BuildDate,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		err := internal.ConfigureLogging()
		tracelog.ErrorLogger.FatalOnError(err)

		err = internal.ConfigureLimiters()
		tracelog.ErrorLogger.FatalOnError(err)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		metricsFile, _ := internal.GetSetting(internal.MetricsFileSetting)
		if err := statistics.WriteTextfile(metricsFile); err != nil {
			tracelog.WarningLogger.Printf("%v", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// configureSource returns the folder given by --from or the configured storage.
func configureSource() (storage.Folder, error) {
	if sourcePrefix != "" {
		return internal.ConfigureFolderFromPrefix(sourcePrefix)
	}
	return internal.ConfigureFolder()
}

func init() {
	cobra.OnInitialize(internal.InitConfig)

	RootCmd.PersistentFlags().StringVar(&internal.CfgFile, "config", "", "config file (default is $HOME/.xzreader.json)")
	RootCmd.PersistentFlags().StringVar(&sourcePrefix, "from", "",
		"source storage prefix, overrides the configured storage")
	RootCmd.InitDefaultVersionFlag()
}
