package perf

import (
	"fmt"
	"github.com/ValentinKolb/hostlink/cmd/util"
	"github.com/ValentinKolb/hostlink/link/client"
	"github.com/ValentinKolb/hostlink/link/common"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"sync"
	"time"
)

var (
	PerfCmd = &cobra.Command{
		Use:   "perf",
		Short: "Measure exchange latency against a backend",
		Long: `Measure exchange latency against a backend. Every exchange dials a
fresh connection, so the numbers include the connect cost. Use the
dummy backend for a smoke run without a live host.`,
		RunE:    run,
		PreRunE: processPerfConfig,
	}
	perfRequests    = 1000
	perfNumThreads  = 10
	perfPayloadSize = 64
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add common exchange flags
	util.SetupClientFlags(PerfCmd)

	// add flags
	key := "requests"
	PerfCmd.PersistentFlags().Int(key, 1000, util.WrapString("Number of exchanges to perform"))
	key = "threads"
	PerfCmd.PersistentFlags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "payload-size"
	PerfCmd.PersistentFlags().Int(key, 64, util.WrapString("Size of the request payload in bytes"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfRequests = viper.GetInt("requests")
	perfNumThreads = viper.GetInt("threads")
	perfPayloadSize = viper.GetInt("payload-size")

	return nil
}

func run(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for hostlink backends")

	config := util.GetClientConfig()
	common.InitLoggers(config.LogLevel)

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(config.String())
	fmt.Printf("Backend: %s\n", util.GetBackendName())
	fmt.Printf("Port: %d\n", util.GetPort())
	fmt.Printf("Requests: %d\n", perfRequests)
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Printf("Payload Size: %d bytes\n", perfPayloadSize)
	fmt.Println()

	fmt.Println("starting exchanges...")

	registry, err := util.GetRegistry(config)
	if err != nil {
		return err
	}

	c := client.NewWithRegistry(registry)
	backendName := util.GetBackendName()
	port := util.GetPort()
	payload := make([]byte, perfPayloadSize)

	timer := gometrics.NewTimer()
	errorCount := gometrics.NewCounter()

	// feed the workers one token per exchange
	jobs := make(chan struct{})
	go func() {
		for i := 0; i < perfRequests; i++ {
			jobs <- struct{}{}
		}
		close(jobs)
	}()

	started := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < perfNumThreads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				start := time.Now()
				_, err := c.Exchange(backendName, port, payload)
				timer.UpdateSince(start)
				if err != nil {
					errorCount.Inc(1)
				}
			}
		}()
	}
	wg.Wait()

	elapsed := time.Since(started)

	// Print the results
	snapshot := timer.Snapshot()
	percentiles := snapshot.Percentiles([]float64{0.5, 0.95, 0.99})

	fmt.Println()
	fmt.Println("Results:")
	printResult("exchanges", fmt.Sprintf("%d", snapshot.Count()))
	printResult("errors", fmt.Sprintf("%d", errorCount.Count()))
	printResult("total time", elapsed.Round(time.Millisecond).String())
	printResult("ops/sec", fmt.Sprintf("%.0f", float64(snapshot.Count())/elapsed.Seconds()))
	printResult("min", time.Duration(snapshot.Min()).String())
	printResult("mean", time.Duration(int64(snapshot.Mean())).String())
	printResult("max", time.Duration(snapshot.Max()).String())
	printResult("p50", time.Duration(int64(percentiles[0])).String())
	printResult("p95", time.Duration(int64(percentiles[1])).String())
	printResult("p99", time.Duration(int64(percentiles[2])).String())

	return nil
}

// printResult prints one result line in a formatted way
func printResult(name, value string) {
	fmt.Printf("%-20s%s\n", name, value)
}
