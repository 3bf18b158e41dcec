package backends

import (
	"fmt"
	"github.com/ValentinKolb/hostlink/link/client"
	"github.com/ValentinKolb/hostlink/link/common"
	"github.com/spf13/cobra"
)

var (
	// BackendsCmd lists the built-in transport backends
	BackendsCmd = &cobra.Command{
		Use:   "backends",
		Short: "List the available transport backends",
		Run: func(cmd *cobra.Command, args []string) {
			registry := client.DefaultRegistry(common.DefaultClientConfig())
			for _, b := range registry.Backends() {
				fmt.Printf("%-10s%s\n", b.Name(), b.Description())
			}
		},
	}
)
