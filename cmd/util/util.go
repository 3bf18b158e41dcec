package util

import (
	"github.com/ValentinKolb/hostlink/link/backend"
	"github.com/ValentinKolb/hostlink/link/backend/stream"
	"github.com/ValentinKolb/hostlink/link/client"
	"github.com/ValentinKolb/hostlink/link/common"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"strings"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupClientFlags adds the common exchange flags to a command
func SetupClientFlags(cmd *cobra.Command) {
	key := "backend"
	cmd.PersistentFlags().String(key, "vsocket", WrapString("The transport backend to use (vsocket, dummy - or tcp, unix together with --endpoint)"))

	key = "port"
	cmd.PersistentFlags().Uint32(key, 2049, WrapString("The host port to send the request to"))

	key = "timeout"
	cmd.PersistentFlags().Int(key, 0, WrapString("The timeout in seconds for a single exchange. 0 blocks until the host replies"))

	key = "endpoint"
	cmd.PersistentFlags().String(key, "", WrapString("Stream address for the tcp (host) and unix (socket path) backends"))
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("hostlink")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() common.ClientConfig {
	return common.ClientConfig{
		TimeoutSecond: viper.GetInt("timeout"),
		LogLevel:      viper.GetString("log-level"),
	}
}

// GetBackendName retrieves the configured backend name
func GetBackendName() string {
	return viper.GetString("backend")
}

// GetRegistry builds the backend registry for the configured client.
// When an endpoint is set, the tcp and unix stream backends are
// registered in addition to the built-in ones.
func GetRegistry(config common.ClientConfig) (*backend.Registry, error) {
	registry := client.DefaultRegistry(config)

	if endpoint := viper.GetString("endpoint"); endpoint != "" {
		if err := registry.Register(stream.New("tcp", endpoint, config)); err != nil {
			return nil, err
		}
		if err := registry.Register(stream.New("unix", endpoint, config)); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// GetPort retrieves the configured host port
func GetPort() uint32 {
	return viper.GetUint32("port")
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
