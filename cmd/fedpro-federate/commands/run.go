package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pion/logging"
	"github.com/spf13/cobra"

	"github.com/makfedpro/fedpro-go/examples/simplefederate"
	"github.com/makfedpro/fedpro-go/pkg/payload/tlvcodec"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Join the configured federation and run the simulation loop",
	Long: `Connect to the RTI bridge named in the configuration file, create and
join the federation execution, publish and subscribe the example object and
interaction model, run the simulation loop for the configured run_time, then
resign and (if this federate created it) destroy the federation execution.`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(GetConfigFile())
	if err != nil {
		return err
	}

	loggerFactory := logging.NewDefaultLoggerFactory()
	if lvl, ok := logLevels[cfg.Logging.Level]; ok {
		loggerFactory.DefaultLogLevel = lvl
	}

	federate := simplefederate.New(simplefederate.Config{
		RTIHost:        cfg.RTI.Host,
		RTIPort:        cfg.RTI.Port,
		FederationName: cfg.Federation.Name,
		FederateName:   cfg.Federate.Name,
		FederateType:   cfg.Federate.Type,
		FOMModules:     cfg.Federation.FOMModules,
		LoggerFactory:  loggerFactory,
	}, tlvcodec.New(), simplefederate.NewLoggingAmbassador(loggerFactory))

	if err := federate.Connect(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() { _ = federate.Disconnect() }()

	if err := federate.CreateAndJoin(); err != nil {
		return fmt.Errorf("create and join: %w", err)
	}
	defer federate.ResignAndDestroy()

	if err := federate.PublishAndSubscribeObjects(); err != nil {
		return fmt.Errorf("publish/subscribe objects: %w", err)
	}
	if err := federate.PublishAndSubscribeWeaponFire(); err != nil {
		return fmt.Errorf("publish/subscribe WeaponFire: %w", err)
	}
	if err := federate.RegisterVehicle(cfg.Federate.Name + "-vehicle-1"); err != nil {
		return fmt.Errorf("register vehicle: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	runDone := make(chan error, 1)
	go func() { runDone <- federate.Run(cfg.RunTime) }()

	select {
	case <-sigCh:
		signal.Stop(sigCh)
		fmt.Println("interrupted, resigning")
		return nil
	case err := <-runDone:
		return err
	}
}

var logLevels = map[string]logging.LogLevel{
	"disable": logging.LogLevelDisabled,
	"error":   logging.LogLevelError,
	"warn":    logging.LogLevelWarn,
	"info":    logging.LogLevelInfo,
	"debug":   logging.LogLevelDebug,
	"trace":   logging.LogLevelTrace,
}
