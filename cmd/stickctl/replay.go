package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/phanxgames/thumbstick"
	"github.com/spf13/cobra"
)

type replayOptions struct {
	configFile string
	plot       bool
	jsonOut    bool
	debug      bool
}

func newReplayCmd() *cobra.Command {
	opts := &replayOptions{}
	cmd := &cobra.Command{
		Use:   "replay [script]",
		Short: "replay a gesture script and print the callbacks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.OutOrStdout(), args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.configFile, "config", "", "controller config file path (yaml)")
	cmd.Flags().BoolVar(&opts.plot, "plot", false, "plot drag offsets")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the trace as JSON")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log gesture state transitions to stderr")
	return cmd
}

func runReplay(out io.Writer, path string, opts *replayOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	script, err := thumbstick.LoadScript(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	ctrl := thumbstick.NewController()
	if opts.configFile != "" {
		cfg, err := loadConfigFile(opts.configFile)
		if err != nil {
			return err
		}
		if err := ctrl.Configure(cfg); err != nil {
			return err
		}
	}
	ctrl.SetDebug(opts.debug)

	stick := thumbstick.NewTweenStick()
	if err := ctrl.BindStick(stick); err != nil {
		return err
	}

	trace, err := thumbstick.NewRunner(script).Run(ctrl)
	if err != nil {
		return err
	}

	if opts.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(trace)
	}

	printTrace(out, trace)
	if opts.plot {
		printPlot(out, trace)
	}
	return nil
}

func loadConfigFile(path string) (thumbstick.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return thumbstick.Config{}, err
	}
	defer f.Close()

	cfg, err := thumbstick.LoadConfig(f)
	if err != nil {
		return thumbstick.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func printTrace(out io.Writer, trace *thumbstick.Trace) {
	fmt.Fprintln(out, headerStyle.Render("trace "+trace.ID.String()))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tACTION\tHANDLED\tSTATE\tSTICK\tEVENTS")
	for _, r := range trace.Records {
		action := r.Action
		if r.Label != "" {
			action += " (" + r.Label + ")"
		}
		handled := dimStyle.Render("-")
		if r.Handled {
			handled = okStyle.Render("yes")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.1f,%.1f\t%s\n",
			r.Step, action, handled, r.State, r.Stick.X, r.Stick.Y, formatEvents(r.Events))
	}
	w.Flush()

	fmt.Fprintf(out, "%s %s  %s %s  %s %s\n",
		labelStyle.Render("down"), valueStyle.Render(fmt.Sprint(trace.Count(thumbstick.EventDown))),
		labelStyle.Render("drag"), valueStyle.Render(fmt.Sprint(trace.Count(thumbstick.EventDrag))),
		labelStyle.Render("up"), valueStyle.Render(fmt.Sprint(trace.Count(thumbstick.EventUp))))
}

func formatEvents(events []thumbstick.GestureEvent) string {
	if len(events) == 0 {
		return ""
	}
	parts := make([]string, 0, len(events))
	for _, e := range events {
		if e.Type == thumbstick.EventDrag {
			parts = append(parts, fmt.Sprintf("drag(%.2f, %.2f)", e.Output.Primary(), e.Output.Secondary()))
			continue
		}
		parts = append(parts, e.Type.String())
	}
	return strings.Join(parts, " ")
}

func printPlot(out io.Writer, trace *thumbstick.Trace) {
	outputs := trace.DragOutputs()
	if len(outputs) < 2 {
		fmt.Fprintln(out, dimStyle.Render("not enough drag outputs to plot"))
		return
	}
	data := make([]float64, len(outputs))
	caption := "offset"
	for i, o := range outputs {
		data[i] = o.Secondary()
	}
	if outputs[0].Mode == thumbstick.OutputRect {
		caption = "y offset"
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Fprintln(out)
	fmt.Fprintln(out, graph)
}
