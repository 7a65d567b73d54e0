package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"leo/internal/hierarchy"
	"leo/internal/logging"
	"leo/internal/sink"
)

const traceSinkName = "trace"

func newEmitCommand(ctx *commandContext) *cobra.Command {
	var (
		level  string
		meta   []string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "emit <logger> <message>",
		Short: "Log a message and show every logger it reached",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, message := args[0], args[1]
			fields, err := parseMeta(meta)
			if err != nil {
				return err
			}

			hub := logging.NewStreamHub(1024)
			trace := func(string) []hierarchy.AddOption {
				return []hierarchy.AddOption{hierarchy.WithSink(traceSinkName, sink.NewStream(hub))}
			}
			reg, cli, err := ctx.buildRegistry(cmd, []sink.Option{sink.WithStreamHub(hub)}, trace)
			if err != nil {
				return err
			}
			defer reg.Close()

			var logger *hierarchy.Logger
			if reg.Has(name) {
				logger, err = reg.Get(name)
			} else {
				// Undeclared loggers get default options plus the trace sink.
				logger, err = reg.Add(name, trace(name)...)
			}
			if err != nil {
				return err
			}

			start := hub.Sequence()
			logErr := logger.Log(cmd.Context(), strings.ToLower(level), message, fields)
			if errors.Is(logErr, hierarchy.ErrUnknownLevel) {
				return logErr
			}
			if logErr != nil {
				logging.WarnWithContext(cli, "sink write failed during emit", "sink_write_failed",
					logging.String(logging.FieldLogger, name),
					logging.Error(logErr),
					logging.String(logging.FieldImpact, "some sinks did not receive the event"),
				)
			}

			events, _, err := hub.Fetch(cmd.Context(), start, 0, false)
			if err != nil {
				return err
			}
			deliveries := traceDeliveries(events)
			if asJSON {
				if err := writeJSON(cmd, deliveries); err != nil {
					return err
				}
				return logErr
			}

			rows := make([][]string, 0, len(deliveries))
			for i, evt := range deliveries {
				rows = append(rows, []string{strconv.Itoa(i + 1), evt.Logger, evt.Level, evt.Message, evt.EventID})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Hop", "Logger", "Level", "Message", "Event"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return logErr
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", hierarchy.LevelInfo, "Level name to log at")
	cmd.Flags().StringArrayVarP(&meta, "meta", "m", nil, "Metadata as key=value (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the delivery trace as JSON")
	return cmd
}

// traceDeliveries keeps one entry per logger reached, in delivery order.
// Stream sinks declared in configuration would otherwise report a logger twice.
func traceDeliveries(events []logging.LogEvent) []logging.LogEvent {
	seen := make(map[string]struct{}, len(events))
	out := make([]logging.LogEvent, 0, len(events))
	for _, evt := range events {
		if _, ok := seen[evt.Logger]; ok {
			continue
		}
		seen[evt.Logger] = struct{}{}
		out = append(out, evt)
	}
	return out
}

func parseMeta(pairs []string) (hierarchy.Metadata, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	meta := make(hierarchy.Metadata, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --meta %q: want key=value", pair)
		}
		meta[key] = value
	}
	return meta, nil
}
