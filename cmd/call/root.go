package call

import (
	"fmt"
	"github.com/ValentinKolb/hostlink/cmd/util"
	"github.com/ValentinKolb/hostlink/link/client"
	"github.com/ValentinKolb/hostlink/link/common"
	"github.com/spf13/cobra"
	"io"
	"os"
)

var (
	hostClient *client.Client

	// CallCmd sends one request to the host and prints the reply
	CallCmd = &cobra.Command{
		Use:   "call [request]",
		Short: "Send one request to the host and print the reply",
		Long: `Send one request to the host and print the reply.

The request payload is taken from the argument. When no argument is
given or the argument is "-", the payload is read from stdin instead.
The configuration can be set via command line flags or environment
variables. The format of the environment variables is HOSTLINK_<flag>
(e.g. HOSTLINK_BACKEND=dummy)`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: setupClient,
		RunE:    run,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add common exchange flags
	util.SetupClientFlags(CallCmd)
}

// setupClient initializes the exchange client
func setupClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	config := util.GetClientConfig()
	common.InitLoggers(config.LogLevel)

	registry, err := util.GetRegistry(config)
	if err != nil {
		return err
	}

	hostClient = client.NewWithRegistry(registry)
	return nil
}

func run(_ *cobra.Command, args []string) error {
	// read the request from the argument or from stdin
	var request []byte
	if len(args) == 1 && args[0] != "-" {
		request = []byte(args[0])
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read request from stdin: %w", err)
		}
		request = data
	}

	reply, err := hostClient.Exchange(util.GetBackendName(), util.GetPort(), request)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", reply)
	return nil
}
