// cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/queuesim/queuesim/sim"
	"github.com/queuesim/queuesim/sim/analytic"
	"github.com/queuesim/queuesim/sim/network"
	"github.com/queuesim/queuesim/sim/rng"
)

var (
	logLevel string
	seed     int64
	horizon  float64
	count    int64

	meanInterarrival float64
	meanService      float64
	servers          int
	compareAnalytic  bool

	meanPatience   float64
	capacity       int
	forwardingRate float64
	retryRate      float64
	meanRetryDelay float64

	configPath string
	graphPath  string
)

var rootCmd = &cobra.Command{
	Use:   "queuesim",
	Short: "Discrete-event simulator for queueing networks",
}

var mmcCmd = &cobra.Command{
	Use:   "mmc",
	Short: "Run a plain M/M/c queueing model",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		logrus.Infof("Starting M/M/c run with meanI=%.2f meanS=%.2f c=%d count=%d horizon=%.2f",
			meanInterarrival, meanService, servers, count, horizon)

		simr := sim.NewSimulator(rng.NewSimulationKey(seed))
		model, err := network.BuildMMC(simr, meanInterarrival, meanService, servers, count)
		if err != nil {
			logrus.Fatalf("building model: %v", err)
		}
		simr.Run(horizon)

		fmt.Println(network.MMCResults(model))
		if compareAnalytic {
			printAnalyticComparison(meanInterarrival, meanService, servers)
		}
		if graphPath != "" {
			writeGraph(simr, graphPath)
		}
		logrus.Info("run complete")
	},
}

var callCenterCmd = &cobra.Command{
	Use:   "callcenter",
	Short: "Run the call-center model (impatience, retry, forwarding)",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		logrus.Infof("Starting call-center run with meanI=%.2f meanS=%.2f meanNu=%.2f c=%d count=%d",
			meanInterarrival, meanService, meanPatience, servers, count)

		simr := sim.NewSimulator(rng.NewSimulationKey(seed))
		model, err := network.BuildCallCenter(simr, meanInterarrival, meanService, meanPatience, capacity,
			forwardingRate, retryRate, meanRetryDelay, servers, count)
		if err != nil {
			logrus.Fatalf("building model: %v", err)
		}
		simr.Run(horizon)

		fmt.Println(network.CallCenterResults(model, simr))
		if graphPath != "" {
			writeGraph(simr, graphPath)
		}
		logrus.Info("run complete")
	},
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Run a network model described by a YAML config file",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		if configPath == "" {
			logrus.Fatal("--config is required")
		}
		cfg, err := network.LoadMMCConfig(configPath)
		if err != nil {
			logrus.Fatalf("loading config: %v", err)
		}
		simr, model, err := cfg.Build()
		if err != nil {
			logrus.Fatalf("building model: %v", err)
		}
		simr.Run(horizon)
		fmt.Println(network.MMCResults(model))
		if graphPath != "" {
			writeGraph(simr, graphPath)
		}
	},
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

func printAnalyticComparison(meanI, meanS float64, c int) {
	ec := analytic.NewErlangC(1/meanI, 1/meanS, c)
	fmt.Println()
	fmt.Println("Analytic comparison (Erlang C)")
	fmt.Printf("  E[W] = %.4f\n", ec.EW())
	fmt.Printf("  E[N] = %.4f\n", ec.EN())
	fmt.Printf("  E[NQ] = %.4f\n", ec.ENQ())
	fmt.Printf("  rho = %.4f\n", ec.Rho())
}

func writeGraph(simr *sim.Simulator, path string) {
	if err := os.WriteFile(path, []byte(network.ExportGraph(simr)), 0o644); err != nil {
		logrus.Warnf("writing graph to %s: %v", path, err)
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 1, "Simulation RNG seed")
	rootCmd.PersistentFlags().Float64Var(&horizon, "horizon", 1_000_000_000, "Simulation horizon, in the same time unit as the mean parameters")
	rootCmd.PersistentFlags().Int64Var(&count, "count", 100_000, "Number of client arrivals to simulate (0 = unbounded, run until horizon)")
	rootCmd.PersistentFlags().StringVar(&graphPath, "graph", "", "If set, write a Graphviz DOT export of the station wiring to this path")

	mmcCmd.Flags().Float64Var(&meanInterarrival, "mean-i", 10, "Mean inter-arrival time E[I]")
	mmcCmd.Flags().Float64Var(&meanService, "mean-s", 8, "Mean service time E[S]")
	mmcCmd.Flags().IntVar(&servers, "servers", 1, "Number of servers (c)")
	mmcCmd.Flags().BoolVar(&compareAnalytic, "compare-analytic", false, "Print the closed-form Erlang C solution alongside the simulated results")

	callCenterCmd.Flags().Float64Var(&meanInterarrival, "mean-i", 100, "Mean inter-arrival time E[I]")
	callCenterCmd.Flags().Float64Var(&meanService, "mean-s", 80, "Mean service time E[S]")
	callCenterCmd.Flags().Float64Var(&meanPatience, "mean-patience", 0, "Mean patience E[WT]; 0 disables impatience")
	callCenterCmd.Flags().IntVar(&capacity, "capacity", 0, "Maximum clients in the system; 0 = unlimited")
	callCenterCmd.Flags().Float64Var(&forwardingRate, "forwarding-rate", 0, "Probability a served client is forwarded back into Process")
	callCenterCmd.Flags().Float64Var(&retryRate, "retry-rate", 0, "Probability a reneging client retries instead of leaving")
	callCenterCmd.Flags().Float64Var(&meanRetryDelay, "mean-retry-delay", 900, "Mean delay before a retry")
	callCenterCmd.Flags().IntVar(&servers, "servers", 1, "Number of servers (c)")

	networkCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML network configuration file")

	rootCmd.AddCommand(mmcCmd, callCenterCmd, networkCmd)
}
