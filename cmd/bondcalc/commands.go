package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/meenmo/germanbond/bond"
	"github.com/meenmo/germanbond/export"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"
)

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "bondcalc %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
		},
	}
}

func (a *app) projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Generate schedules and metrics for one or more bonds",
		Long: `Reads a bond JSON object or array and writes, per bond, the amortization
schedule, price and risk metrics, TCEA, TREA, yield and the issuer and
investor cash flows. Arrays are projected in parallel.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBonds(cmd, true)
		},
	}
	addBondFlags(cmd)
	cmd.Flags().Int("workers", 0, "concurrent projections (0: batch.workers from config)")
	return cmd
}

func (a *app) scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate amortization schedules only",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBonds(cmd, false)
		},
	}
	addBondFlags(cmd)
	return cmd
}

func (a *app) metricsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Price and rate an externally supplied net-flow schedule",
		Long: `Reads {"flows":[{"period":1,"net_flow":...}], "market_rate":..., "periods_per_year":...}
(or an array of them) with optional theoretical_price, issuer_proceeds,
investor_outlay and commercial_value, and writes the metrics summary.`,
		Args: cobra.NoArgs,
		RunE: a.runMetrics,
	}
	cmd.Flags().StringP("input", "i", "", "JSON input path (reads stdin if omitted)")
	return cmd
}

func addBondFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "JSON input path (reads stdin if omitted)")
	cmd.Flags().StringP("format", "f", formatJSON, "output format: json or csv (csv takes a single bond)")
}

func (a *app) runBonds(cmd *cobra.Command, withMetrics bool) error {
	path, _ := cmd.Flags().GetString("input")
	format, _ := cmd.Flags().GetString("format")
	if format != formatJSON && format != formatCSV {
		return fmt.Errorf("unsupported format %q (json or csv)", format)
	}
	out := cmd.OutOrStdout()

	raw, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return a.fail(out, fmt.Sprintf("read input: %v", err))
	}
	inputs, isArray, err := parseRecords[bondInput](raw)
	if err != nil {
		return a.fail(out, fmt.Sprintf("parse JSON: %v", err))
	}
	if format == formatCSV && isArray {
		return fmt.Errorf("csv output takes a single bond, got an array of %d", len(inputs))
	}

	outputs := make([]bondOutput, len(inputs))
	terms := make([]bond.Terms, 0, len(inputs))
	index := make([]int, 0, len(inputs))
	for i, in := range inputs {
		outputs[i] = newBondOutput(in)
		t, err := in.terms()
		if err != nil {
			outputs[i].Error = err.Error()
			continue
		}
		terms = append(terms, t)
		index = append(index, i)
	}

	var schedules [][]bond.CashFlowEntry
	if withMetrics {
		workers := a.cfg.Batch.Workers
		if w, _ := cmd.Flags().GetInt("workers"); w > 0 {
			workers = w
		}
		a.log.Debug().Int("bonds", len(terms)).Int("workers", workers).Msg("projecting")

		results := bond.ProjectAll(cmd.Context(), terms, bond.BatchOptions{
			Workers: workers,
			Solver:  a.cfg.SolverSettings(),
		})
		schedules = make([][]bond.CashFlowEntry, len(results))
		for _, r := range results {
			o := &outputs[index[r.Index]]
			if r.Err != nil {
				o.Error = r.Err.Error()
				continue
			}
			o.setProjection(r.Projection)
			schedules[r.Index] = r.Projection.Schedule
		}
	} else {
		schedules = make([][]bond.CashFlowEntry, len(terms))
		for j, t := range terms {
			o := &outputs[index[j]]
			schedule, err := bond.GenerateSchedule(t)
			if err != nil {
				o.Error = err.Error()
				continue
			}
			o.setSchedule(t, schedule)
			schedules[j] = schedule
		}
	}

	failed := 0
	for i, o := range outputs {
		if o.Error != "" {
			failed++
			a.log.Warn().Int("index", i).Str("task_id", o.TaskID).Str("error", o.Error).Msg("bond failed")
		}
	}
	a.log.Info().Int("bonds", len(outputs)).Int("failed", failed).Msg("done")

	if format == formatCSV {
		if failed > 0 {
			return fmt.Errorf("bond failed: %s", outputs[0].Error)
		}
		return export.WriteScheduleCSV(out, schedules[0], a.cfg.ExportOptions())
	}

	var payload any = outputs
	if !isArray {
		payload = outputs[0]
	}
	if err := writeJSON(out, payload); err != nil {
		return err
	}
	if failed > 0 {
		return errRecordFailed
	}
	return nil
}

func (a *app) runMetrics(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("input")
	out := cmd.OutOrStdout()

	raw, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return a.fail(out, fmt.Sprintf("read input: %v", err))
	}
	requests, isArray, err := parseRecords[metricsRequest](raw)
	if err != nil {
		return a.fail(out, fmt.Sprintf("parse JSON: %v", err))
	}

	solver := a.cfg.SolverSettings()
	hadError := false
	records := make([]metricsRecord, len(requests))
	for i, req := range requests {
		records[i].TaskID = req.TaskID
		in := req.input()
		in.Solver = solver
		m, err := bond.ComputeMetrics(in)
		if err != nil {
			hadError = true
			records[i].Error = err.Error()
			a.log.Warn().Int("index", i).Str("task_id", req.TaskID).Err(err).Msg("metrics failed")
			continue
		}
		records[i].Metrics = toMetricsOutput(m)
	}

	var payload any = records
	if !isArray {
		payload = records[0]
	}
	if err := writeJSON(out, payload); err != nil {
		return err
	}
	if hadError {
		return errRecordFailed
	}
	return nil
}

// fail writes a bare error record, as a failed single record would be.
func (a *app) fail(out io.Writer, msg string) error {
	a.log.Error().Msg(msg)
	if err := writeJSON(out, struct {
		Error string `json:"error"`
	}{msg}); err != nil {
		return err
	}
	return errRecordFailed
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
