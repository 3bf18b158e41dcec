package serve

import (
	"fmt"
	cmdUtil "github.com/ValentinKolb/hostlink/cmd/util"
	"github.com/ValentinKolb/hostlink/link/common"
	"github.com/ValentinKolb/hostlink/link/peer"
	"github.com/VictoriaMetrics/metrics"
	"github.com/joho/godotenv"
	"github.com/mdlayher/vsock"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strings"
)

var (
	serveCmdConfig = &common.PeerConfig{}
	ServeCmd       = &cobra.Command{
		Use:   "serve",
		Short: "Start a loopback peer that answers framed requests",
		Long: `Start a loopback peer that answers framed requests. By default every
request is echoed back; with --reply the peer answers with a fixed
payload instead. The configuration can be set via command line flags or
environment variables. The format of the environment variables is
HOSTLINK_<flag> (e.g. HOSTLINK_TIMEOUT=15)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(initConfig)

	// add flags
	key := "transport"
	ServeCmd.PersistentFlags().String(key, "tcp", cmdUtil.WrapString("The listener type (tcp, unix, vsock)"))

	key = "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:2049", cmdUtil.WrapString("The address to listen on for tcp (host:port) and unix (socket path) listeners"))

	key = "port"
	ServeCmd.PersistentFlags().Uint32(key, 2049, cmdUtil.WrapString("The port to listen on for vsock listeners"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("Per-connection I/O timeout in seconds (0 disables deadlines)"))

	key = "reply"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Fixed reply payload. When empty the peer echoes each request back"))

	key = "metrics-endpoint"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Optional address to serve Prometheus metrics and pprof on (e.g. localhost:6060)"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the peer configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// read the configuration from the command line flags and environment variables
	serveCmdConfig.Transport = viper.GetString("transport")
	serveCmdConfig.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.Port = viper.GetUint32("port")
	serveCmdConfig.TimeoutSecond = viper.GetInt("timeout")
	serveCmdConfig.MetricsEndpoint = viper.GetString("metrics-endpoint")
	serveCmdConfig.LogLevel = viper.GetString("log-level")

	switch serveCmdConfig.Transport {
	case "tcp", "unix", "vsock":
	default:
		return fmt.Errorf("invalid transport %s (expected one of: tcp, unix, vsock)", serveCmdConfig.Transport)
	}

	return nil
}

// run starts the loopback peer
func run(_ *cobra.Command, _ []string) error {
	common.InitLoggers(serveCmdConfig.LogLevel)

	fmt.Println(serveCmdConfig.String())

	listener, err := listen()
	if err != nil {
		return err
	}

	// serve metrics and pprof if configured
	if endpoint := serveCmdConfig.MetricsEndpoint; endpoint != "" {
		go func() {
			http.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
				metrics.WritePrometheus(w, true)
			})
			if err := http.ListenAndServe(endpoint, nil); err != nil {
				peer.Logger.Errorf("metrics endpoint failed: %v", err)
			}
		}()
	}

	handler := peer.EchoHandler
	if reply := viper.GetString("reply"); reply != "" {
		fixed := []byte(reply)
		handler = func([]byte) ([]byte, error) {
			return fixed, nil
		}
	}

	return peer.New(*serveCmdConfig, handler).Serve(listener)
}

// listen opens the listener for the configured transport
func listen() (net.Listener, error) {
	switch serveCmdConfig.Transport {
	case "tcp":
		return net.Listen("tcp", serveCmdConfig.Endpoint)
	case "unix":
		// remove a stale socket file from an earlier run
		if err := os.RemoveAll(serveCmdConfig.Endpoint); err != nil {
			return nil, err
		}
		return net.Listen("unix", serveCmdConfig.Endpoint)
	case "vsock":
		return vsock.Listen(serveCmdConfig.Port, nil)
	default:
		return nil, fmt.Errorf("invalid transport %s", serveCmdConfig.Transport)
	}
}

// initConfig reads in serveCmdConfig file and ENV variables if set.
func initConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("hostlink")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}
