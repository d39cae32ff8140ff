package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arowla/django-versions/pkg/logging"
	"github.com/arowla/django-versions/pkg/model"
	"github.com/arowla/django-versions/pkg/revision"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "versions",
	Short: "versions inspects the revision history of versioned records",
	Long: `versions inspects the revision history kept by the record versioning
engine: per-item revision logs, stored snapshots, and diffs between
stored revisions.

Repositories are configured in a versions.yaml file, e.g.:

    repositories:
      default:
        backend: localfs
        local: /var/lib/versions/default
`,
}

// Config is the CLI configuration read by viper
type Config struct {
	Repositories model.Config `mapstructure:"repositories"`
	Logging      string       `mapstructure:"logging"`
}

var config Config

var logFatalln = log.Fatalln

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("logging", logging.LogLevelNone)
	if os.Getenv("VERSIONS_CONFIG") != "" {
		viper.SetConfigFile(os.Getenv("VERSIONS_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.versions")
		viper.AddConfigPath("/etc/versions")
		viper.SetConfigName("versions")
	}

	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
	if err := viper.Unmarshal(&config); err != nil {
		logFatalln(err)
	}
}

func newManager() (*revision.Manager, error) {
	logger, err := logging.New(config.Logging)
	if err != nil {
		return nil, err
	}
	return revision.NewManager(config.Repositories, revision.Logger(logger))
}
