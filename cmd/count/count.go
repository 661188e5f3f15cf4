// Package count is a subcommand of the root command. It counts hardware and
// software performance events for a target process while a bounded unit of
// work runs, then exports the counts.
package count

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"perfcount/internal/common"
	"perfcount/internal/counter"
	"perfcount/internal/events"
	"perfcount/internal/results"
	"perfcount/internal/target"
	"perfcount/internal/util"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v2"
)

const cmdName = "count"

var examples = []string{
	fmt.Sprintf("  Count default events while running an application:  $ %s %s -- /path/to/myapp arg1 arg2", common.AppName, cmdName),
	fmt.Sprintf("  Count TLB events for a running process:             $ %s %s --cache tlb --pid 1234 --duration 30", common.AppName, cmdName),
	fmt.Sprintf("  Count specific hardware events:                     $ %s %s --hardware instructions,branch-misses -- /path/to/myapp", common.AppName, cmdName),
	fmt.Sprintf("  Count events listed in a YAML file:                 $ %s %s --events ./events.yaml -- /path/to/myapp", common.AppName, cmdName),
	fmt.Sprintf("  Publish final counts for scraping:                  $ %s %s --prometheus :9090 -- /path/to/myapp", common.AppName, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "Count performance events for a target process",
	Long:          "",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "primary",
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
}

var (
	// target options
	flagPid      int
	flagDuration int
	// event options
	flagHardware      []string
	flagSoftware      []string
	flagCache         []string
	flagEventFilePath string
	// output options
	flagOutputFormat []string
	flagPrometheus   string

	// positional arguments
	argsApplication []string
)

const (
	flagPidName           = "pid"
	flagDurationName      = "duration"
	flagHardwareName      = "hardware"
	flagSoftwareName      = "software"
	flagCacheName         = "cache"
	flagEventFilePathName = "events"
	flagOutputFormatName  = "format"
	flagPrometheusName    = "prometheus"
)

const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"
)

var formatOptions = []string{formatCSV, formatXLSX}

func init() {
	Cmd.Flags().IntVar(&flagPid, flagPidName, 0, "attach counters to the process with this pid instead of running an application")
	Cmd.Flags().IntVar(&flagDuration, flagDurationName, 10, "number of seconds to count when attached with --pid")
	Cmd.Flags().StringSliceVar(&flagHardware, flagHardwareName, []string{}, "comma separated list of hardware events, e.g., instructions,cpu-cycles")
	Cmd.Flags().StringSliceVar(&flagSoftware, flagSoftwareName, []string{}, "comma separated list of software events, e.g., task-clock,page-faults")
	Cmd.Flags().StringSliceVar(&flagCache, flagCacheName, []string{}, "comma separated list of cache units or groups: mem, tlb, bpu, l1d, l1i, ll, dtlb, itlb, node")
	Cmd.Flags().StringVar(&flagEventFilePath, flagEventFilePathName, "", "path to a YAML file listing events to count")
	Cmd.Flags().StringSliceVar(&flagOutputFormat, flagOutputFormatName, []string{formatCSV}, fmt.Sprintf("comma separated list of output formats: %s", strings.Join(formatOptions, ", ")))
	Cmd.Flags().StringVar(&flagPrometheus, flagPrometheusName, "", "address to serve final counter values on for scraping, e.g., :9090")
}

func validateFlags(cmd *cobra.Command, args []string) error {
	argsApplication = args
	if flagPid != 0 && len(argsApplication) > 0 {
		return fmt.Errorf("--%s and an application to run are mutually exclusive", flagPidName)
	}
	if flagPid == 0 && len(argsApplication) == 0 {
		return fmt.Errorf("either --%s or an application to run (after --) is required", flagPidName)
	}
	if flagDuration < 1 {
		return fmt.Errorf("--%s must be at least 1 second", flagDurationName)
	}
	for _, format := range flagOutputFormat {
		if !slices.Contains(formatOptions, strings.ToLower(format)) {
			return fmt.Errorf("unsupported output format: %s", format)
		}
	}
	if flagEventFilePath != "" {
		exists, err := util.FileExists(flagEventFilePath)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("event file not found: %s", flagEventFilePath)
		}
	}
	// fail fast on misspelled event names, before any counter is created
	if _, _, _, err := requestedEvents(); err != nil {
		return err
	}
	return nil
}

// eventFile is the YAML schema of the --events file.
type eventFile struct {
	Hardware []string `yaml:"hardware"`
	Software []string `yaml:"software"`
	Cache    []string `yaml:"cache"`
}

// requestedEvents merges the event flags with the optional event file and
// parses the result against the catalog. When nothing is requested, a small
// default set is used: instructions, cpu-cycles, and task-clock.
func requestedEvents() (hardware []events.HardwareKind, software []events.SoftwareKind, cacheUnits mapset.Set[events.CacheUnit], err error) {
	hardwareNames := flagHardware
	softwareNames := flagSoftware
	cacheTokens := flagCache
	if flagEventFilePath != "" {
		var contents []byte
		contents, err = os.ReadFile(flagEventFilePath) // #nosec G304
		if err != nil {
			err = fmt.Errorf("failed to read event file: %w", err)
			return
		}
		var file eventFile
		if err = yaml.Unmarshal(contents, &file); err != nil {
			err = fmt.Errorf("failed to parse event file: %w", err)
			return
		}
		hardwareNames = append(hardwareNames, file.Hardware...)
		softwareNames = append(softwareNames, file.Software...)
		cacheTokens = append(cacheTokens, file.Cache...)
	}
	if len(hardwareNames) == 0 && len(softwareNames) == 0 && len(cacheTokens) == 0 {
		hardwareNames = []string{"instructions", "cpu-cycles"}
		softwareNames = []string{"task-clock"}
	}
	for _, name := range hardwareNames {
		var kind events.HardwareKind
		kind, err = events.ParseHardware(name)
		if err != nil {
			return
		}
		hardware = append(hardware, kind)
	}
	for _, name := range softwareNames {
		var kind events.SoftwareKind
		kind, err = events.ParseSoftware(name)
		if err != nil {
			return
		}
		software = append(software, kind)
	}
	cacheUnits = mapset.NewSet[events.CacheUnit]()
	for _, token := range cacheTokens {
		var units mapset.Set[events.CacheUnit]
		units, err = events.ParseCacheUnits(token)
		if err != nil {
			return
		}
		cacheUnits = cacheUnits.Union(units)
	}
	return
}

func runCmd(cmd *cobra.Command, args []string) error {
	appContext := cmd.Parent().Context().Value(common.AppContext{}).(common.AppContext)
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		slog.Debug("flag", slog.String("name", f.Name), slog.String("value", f.Value.String()))
	})
	hardware, software, cacheUnits, err := requestedEvents()
	if err != nil {
		return err
	}
	// resolve the target and the unit of work to count
	var measureTarget target.Target
	var work func() error
	if flagPid != 0 {
		measureTarget = target.Process(flagPid)
		duration := time.Duration(flagDuration) * time.Second
		work = func() error {
			time.Sleep(duration)
			return nil
		}
	} else {
		// counters attach to this process and are inherited by the
		// application process spawned inside the measured work
		measureTarget = target.Self()
		work = func() error {
			app := exec.Command(argsApplication[0], argsApplication[1:]...) // #nosec G204
			app.Stdout = os.Stdout
			app.Stderr = os.Stderr
			return app.Run()
		}
	}
	slog.Info("counting events", slog.Int("pid", measureTarget.PID()), slog.Int("hardware", len(hardware)), slog.Int("software", len(software)), slog.Int("cacheUnits", cacheUnits.Cardinality()))

	accumulator := results.NewAccumulator()
	group := counter.NewGroup(measureTarget, counter.NewPerfBackend(), accumulator)
	defer func() {
		if err := group.Close(); err != nil {
			slog.Error("failed to close counter group", slog.String("error", err.Error()))
		}
	}()
	group.AddHardware(hardware...)
	group.AddSoftware(software...)
	group.AddCacheMatrix(cacheUnits)
	for _, failure := range group.Failures() {
		fmt.Fprintf(os.Stderr, "skipping %s: %v\n", failure.Name, failure.Err)
	}
	if group.Len() == 0 {
		return fmt.Errorf("no counters could be created, see %s", appContext.LogFilePath)
	}

	workErr := counter.Measure(group, work)
	if err := reportResults(accumulator, appContext.OutputDir, workErr); err != nil {
		return err
	}
	if flagPrometheus != "" {
		if err := serveCounts(flagPrometheus, accumulator.Records()); err != nil {
			return err
		}
	}
	return nil
}

// reportResults prints and exports the accumulated counts, then surfaces any
// failure of the measured work. Counts collected before the work failed are
// still valid measurements, so they are written out before the failure is
// reported.
func reportResults(accumulator *results.Accumulator, outputDir string, workErr error) error {
	printSummary(accumulator)
	if err := writeOutputFiles(accumulator, outputDir); err != nil {
		return err
	}
	if workErr != nil {
		return fmt.Errorf("measured application failed: %w", workErr)
	}
	return nil
}

// printSummary writes per-counter values to stdout. On a terminal the values
// are aligned and use thousands separators; otherwise the raw two-line table
// is printed.
func printSummary(accumulator *results.Accumulator) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := accumulator.WriteTable(os.Stdout); err != nil {
			slog.Error("failed to print counter table", slog.String("error", err.Error()))
		}
		return
	}
	p := message.NewPrinter(language.English) // use printer to get commas at thousands, e.g., 258,691,376
	for _, record := range accumulator.Records() {
		p.Printf("%-28s %20d\n", record.Name, record.Value)
	}
}

func writeOutputFiles(accumulator *results.Accumulator, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil { // #nosec G301
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, format := range flagOutputFormat {
		var err error
		var path string
		switch strings.ToLower(format) {
		case formatCSV:
			path = filepath.Join(outputDir, "counters.csv")
			err = accumulator.ExportCSV(path)
		case formatXLSX:
			path = filepath.Join(outputDir, "counters.xlsx")
			err = accumulator.ExportXLSX(path)
		}
		if err != nil {
			return fmt.Errorf("failed to export counters to %s: %w", path, err)
		}
		fmt.Printf("Counter values written to %s\n", path)
	}
	return nil
}
