package features

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/dGate/lib/config"
	"github.com/ValentinKolb/dGate/lib/gate"
	"github.com/ValentinKolb/dGate/lib/kvstore"
	"github.com/ValentinKolb/dGate/lib/kvstore/fstore"
	"github.com/ValentinKolb/dGate/lib/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	nodeConfig = &config.NodeConfig{}

	// FeatureCommands represents the features command group
	FeatureCommands = &cobra.Command{
		Use:   "features",
		Short: "Inspect and validate the node's cluster feature configuration",
		Long:  "Inspect and validate the node's cluster feature configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is DGATE_<flag> (e.g. DGATE_STORAGE_FORMAT=v3)",
	}

	listCmd = &cobra.Command{
		Use:     "list",
		Short:   "Print the known and supported feature sets for this configuration",
		PreRunE: processConfig,
		RunE:    runList,
	}

	validateCmd = &cobra.Command{
		Use:     "validate",
		Short:   "Check the feature configuration for inconsistent settings",
		PreRunE: processConfig,
		RunE:    runValidate,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(initConfig)

	// add flags
	key := "storage-format"
	FeatureCommands.PersistentFlags().String(key, "v4", "On-disk maple format this node writes (v2, v3, v4). Older formats disable the newer format features")

	key = "enable-lock-manager-v2"
	FeatureCommands.PersistentFlags().Bool(key, false, "Enable the reworked lock manager (additionally requires the lockmgr-v2 experimental opt-in)")

	key = "experimental-features"
	FeatureCommands.PersistentFlags().String(key, "", "Comma-separated list of experimental opt-ins (lockmgr-v2, shard-rebalancing, raft-cluster-management)")

	key = "disabled-features"
	FeatureCommands.PersistentFlags().String(key, "", "Comma-separated list of feature names to force off")

	key = "data-dir"
	FeatureCommands.PersistentFlags().String(key, "", "Directory holding the node's local feature records. If unset, the persisted enablement state is not consulted")

	key = "log-level"
	FeatureCommands.PersistentFlags().String(key, "info", "LogLevel is the level at which logs will be output (debug, info, warn, error)")

	// add subcommands
	FeatureCommands.AddCommand(listCmd)
	FeatureCommands.AddCommand(validateCmd)
}

// initConfig reads in the env files and initializes viper.
func initConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("dgate")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// processConfig reads the configuration from the command line flags and
// environment variables into the node configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	nodeConfig.StorageFormat = viper.GetString("storage-format")
	nodeConfig.EnableLockManagerV2 = viper.GetBool("enable-lock-manager-v2")

	nodeConfig.ExperimentalFeatures = nil
	for _, f := range strings.Split(viper.GetString("experimental-features"), ",") {
		if f = strings.TrimSpace(f); f != "" {
			nodeConfig.ExperimentalFeatures = append(nodeConfig.ExperimentalFeatures, config.ExperimentalFeature(f))
		}
	}

	nodeConfig.DisabledFeatures = nil
	for _, f := range strings.Split(viper.GetString("disabled-features"), ",") {
		if f = strings.TrimSpace(f); f != "" {
			nodeConfig.DisabledFeatures = append(nodeConfig.DisabledFeatures, f)
		}
	}

	return nil
}

// runList builds a gate from the node configuration and prints the
// resulting feature sets.
func runList(_ *cobra.Command, _ []string) error {
	logging.InitLoggers(viper.GetString("log-level"))

	fcfg, err := config.FeatureConfig(nodeConfig)
	if err != nil {
		return err
	}

	// consult the node's persisted enablement record if a data dir is given
	var store kvstore.IStore
	if dir := viper.GetString("data-dir"); dir != "" {
		if store, err = fstore.NewFileStore(dir); err != nil {
			return err
		}
	}

	service, err := gate.New(fcfg, store)
	if err != nil {
		return err
	}
	nodeFeatures := gate.NewNodeFeatures(service)
	defer func() {
		nodeFeatures.Close()
		_ = service.Stop()
	}()

	fmt.Printf("%-12s: %s\n", "known", service.KnownFeatureSet().Join())
	fmt.Printf("%-12s: %s\n", "supported", service.SupportedFeatureSet().Join())

	enabled := gate.NewSet()
	for name, f := range service.RegisteredFeatures() {
		if f.IsEnabled() {
			enabled.Add(name)
		}
	}
	fmt.Printf("%-12s: %s\n", "enabled", enabled.Join())
	fmt.Printf("%-12s: %s\n", "max format", nodeFeatures.MaxStorageFormat())

	return nil
}

// runValidate runs the configuration translation and reports the outcome.
func runValidate(_ *cobra.Command, _ []string) error {
	fcfg, err := config.FeatureConfig(nodeConfig)
	if err != nil {
		return fmt.Errorf("invalid feature configuration: %w", err)
	}

	fmt.Println("feature configuration is valid")
	fmt.Printf("%-12s: %s\n", "disabled", fcfg.DisabledFeatures.Join())
	fmt.Printf("%-12s: %s\n", "masked", fcfg.MaskedFeatures.Join())
	return nil
}
