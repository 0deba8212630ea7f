package commands

import (
	"fmt"
	"time"

	"github.com/pion/logging"
	"github.com/spf13/cobra"

	"github.com/makfedpro/fedpro-go/pkg/engine"
	"github.com/makfedpro/fedpro-go/pkg/handle"
	"github.com/makfedpro/fedpro-go/pkg/payload/tlvcodec"
)

var listFederationsCmd = &cobra.Command{
	Use:   "list-federations",
	Short: "Connect to the configured RTI bridge and report known federation executions",
	Long: `Connect to the RTI bridge, issue list_federation_executions, and print the
federation names reported back via the asynchronous reportFederationExecutions
callback. Does not join any federation.`,
	RunE: runListFederations,
}

// listCallback implements FederateAmbassador with every method a no-op
// except the one this command actually waits on.
type listCallback struct {
	names chan []string
}

func (l *listCallback) ConnectionLost(string) error { return nil }
func (l *listCallback) ReportFederationExecutions(names []string) error {
	l.names <- names
	return nil
}
func (l *listCallback) ReportFederationExecutionMembers(string, []string) error { return nil }
func (l *listCallback) ReportFederationExecutionDoesNotExist(string) error      { return nil }
func (l *listCallback) FederateResigned(string) error                          { return nil }
func (l *listCallback) ObjectInstanceNameReservationSucceeded(string) error     { return nil }
func (l *listCallback) ObjectInstanceNameReservationFailed(string) error        { return nil }
func (l *listCallback) DiscoverObjectInstance(handle.ObjectInstanceHandle, handle.ObjectClassHandle, string, handle.FederateHandle) error {
	return nil
}
func (l *listCallback) RemoveObjectInstance(handle.ObjectInstanceHandle, []byte, handle.FederateHandle) error {
	return nil
}
func (l *listCallback) ReceiveInteraction(handle.InteractionClassHandle, map[handle.ParameterHandle][]byte, []byte, uint8, handle.FederateHandle) error {
	return nil
}
func (l *listCallback) ReflectAttributeValues(handle.ObjectInstanceHandle, map[handle.AttributeHandle][]byte, []byte, uint8, handle.FederateHandle) error {
	return nil
}

func runListFederations(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(GetConfigFile())
	if err != nil {
		return err
	}

	cb := &listCallback{names: make(chan []string, 1)}
	e := engine.New(engine.Config{
		Codec:         tlvcodec.New(),
		Ambassador:    cb,
		LoggerFactory: logging.NewDefaultLoggerFactory(),
	})
	if err := e.Connect(cfg.RTI.Host, cfg.RTI.Port); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() { _ = e.Disconnect() }()

	if err := e.Ambassador.ListFederationExecutions(); err != nil {
		return fmt.Errorf("list federation executions: %w", err)
	}

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case names := <-cb.names:
			return printFederationNames(names)
		default:
		}
		if err := e.EvokeCallback(200 * time.Millisecond); err != nil {
			return fmt.Errorf("evoke callback: %w", err)
		}
	}
	return fmt.Errorf("timed out waiting for reportFederationExecutions callback")
}

func printFederationNames(names []string) error {
	if len(names) == 0 {
		fmt.Println("no federation executions reported")
		return nil
	}
	fmt.Println("Federation executions:")
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}
	return nil
}
