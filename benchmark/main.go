// Package main provides a performance benchmarking tool for the lineup CLI.
// It generates synthetic squads of increasing size, then times the optimize and
// roles commands against each one, running each test multiple times. The first
// successful cached run is treated as cold and the rest are averaged as warm.
// Results are written to CSV for performance analysis and documentation.
//
// Prerequisites:
// - lineup binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where the synthetic squads are written
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Squad       string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	Workers     int
	NoCacheRuns int
	CacheRuns   int
	Seed        uint64
	SquadSizes  []int
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     os.Args[1],
		Timeout:     time.Minute,
		Workers:     8,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Seed:        42,
		SquadSizes:  []int{11, 25, 50, 100, 250},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("lineup", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	squads, err := generateSquads(config)
	if err != nil {
		fmt.Printf("Failed to generate squads: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config, squads)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the lineup binary and the work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("lineup"); err != nil {
		return fmt.Errorf("lineup binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir %s: %w", config.WorkDir, err)
	}
	return nil
}

// generateSquads writes one synthetic squad per configured size using lineup sample
func generateSquads(config BenchmarkConfig) ([]string, error) {
	paths := make([]string, 0, len(config.SquadSizes))
	for _, size := range config.SquadSizes {
		path := filepath.Join(config.WorkDir, fmt.Sprintf("squad_%d.csv", size))
		cmd := exec.Command("lineup", "sample",
			"--players", strconv.Itoa(size),
			"--seed", strconv.FormatUint(config.Seed, 10),
			"--output-file", path)
		if output, err := cmd.CombinedOutput(); err != nil {
			return nil, fmt.Errorf("sample of %d players failed: %w\nOutput: %s", size, err, string(output))
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// runBenchmarks executes all benchmark tests across the generated squads
func runBenchmarks(config BenchmarkConfig, squads []string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d squads, %v timeout, %d workers, no-cache: %d runs, cache: %d runs\n",
		len(squads), config.Timeout, config.Workers, config.NoCacheRuns, config.CacheRuns)

	for _, squad := range squads {
		name := strings.TrimSuffix(filepath.Base(squad), filepath.Ext(squad))
		fmt.Printf("Benchmarking %s\n", name)

		results = append(results, runBenchmarkSuite(config, name, squad, "optimize", "lineup optimization"))
		results = append(results, runBenchmarkSuite(config, name, squad, "roles", "role analysis"))
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, name, squad, command, description string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, name)

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, squad, command, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Squad:       name,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a lineup command multiple times with specified cache backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, squad, command, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{command, squad, "--cache-backend", cacheBackend, "--workers", strconv.Itoa(config.Workers)}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("lineup", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
			<-done
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)
	if command == "optimize" {
		return strings.Contains(outputStr, "Total fit:") && strings.Contains(outputStr, "Solved")
	}
	return len(strings.TrimSpace(outputStr)) > 0
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("lineup_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"squad", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Squad, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "optimize", "Lineup Optimization:")
	printCommandSummary(results, "roles", "Role Analysis:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: No-cache: %s, Cold: %s, Warm: %s\n", result.Squad, result.NoCacheTime, result.ColdTime, result.WarmTime)
		}
	}
}
