package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mediabridge/internal/ipc"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the playback journal",
	}

	var listLimit int
	var listJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List journaled playback events, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.History(listLimit)
				if err != nil {
					return err
				}
				if listJSON {
					return writeJSON(cmd, resp)
				}

				stdout := cmd.OutOrStdout()
				if len(resp.Events) == 0 {
					fmt.Fprintln(stdout, "No playback history recorded")
					return nil
				}
				rows := make([][]string, 0, len(resp.Events))
				for _, event := range resp.Events {
					rows = append(rows, []string{
						strconv.FormatInt(event.ID, 10),
						event.OccurredAt,
						event.Backend,
						event.State.Status,
						historyTrackLabel(event.State),
					})
				}
				table := renderTable(
					[]string{"ID", "Occurred", "Backend", "Status", "Track"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
				)
				fmt.Fprintln(stdout, table)
				return nil
			})
		},
	}
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of events to show (0 for all)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Emit history as JSON")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all journaled playback events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.HistoryClear()
				if err != nil {
					return err
				}
				if resp.Cleared {
					fmt.Fprintln(cmd.OutOrStdout(), "Playback history cleared")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "Playback history not cleared")
				}
				return nil
			})
		},
	}

	historyCmd.AddCommand(listCmd)
	historyCmd.AddCommand(clearCmd)
	historyCmd.AddCommand(newHistoryHealthCommand(ctx))
	return historyCmd
}

func newHistoryHealthCommand(ctx *commandContext) *cobra.Command {
	var healthJSON bool
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check journal database health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.DatabaseHealth()
				if err != nil {
					return err
				}
				if healthJSON {
					return writeJSON(cmd, resp)
				}

				stdout := cmd.OutOrStdout()
				colorize := shouldColorize(stdout)
				for _, line := range renderSectionHeader("Journal Health", colorize) {
					fmt.Fprintln(stdout, line)
				}
				fmt.Fprintln(stdout, renderStatusLine("Database", boolKind(resp.DatabaseExists), resp.DBPath, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Readable", boolKind(resp.DatabaseReadable), yesNo(resp.DatabaseReadable), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Events table", boolKind(resp.TableExists), yesNo(resp.TableExists), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Integrity", boolKind(resp.IntegrityCheck), yesNo(resp.IntegrityCheck), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Total events", statusInfo, strconv.Itoa(resp.TotalEvents), colorize))
				if len(resp.MissingColumns) > 0 {
					fmt.Fprintln(stdout, renderStatusLine("Missing columns", statusError, strings.Join(resp.MissingColumns, ", "), colorize))
				}
				if strings.TrimSpace(resp.Error) != "" {
					fmt.Fprintln(stdout, renderStatusLine("Error", statusError, resp.Error, colorize))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&healthJSON, "json", false, "Emit health report as JSON")
	return cmd
}

func boolKind(ok bool) statusKind {
	if ok {
		return statusOK
	}
	return statusError
}

func historyTrackLabel(state ipc.PlaybackState) string {
	title := strings.TrimSpace(state.Title)
	artist := strings.TrimSpace(state.Artist)
	switch {
	case title != "" && artist != "":
		return title + " - " + artist
	case title != "":
		return title
	default:
		return ""
	}
}
