package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mediabridge/internal/ipc"
	"mediabridge/internal/media"
)

func newPlayerCommands(ctx *commandContext) []*cobra.Command {
	playerCmd := &cobra.Command{
		Use:   "player",
		Short: "Send transport actions to the active media player",
	}
	for _, action := range media.Actions() {
		playerCmd.AddCommand(newPlayerActionCommand(ctx, action))
	}

	var nowJSON bool
	nowCmd := &cobra.Command{
		Use:   "now",
		Short: "Show the current playback state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.NowPlaying()
				if err != nil {
					return err
				}
				if nowJSON {
					return writeJSON(cmd, resp)
				}

				stdout := cmd.OutOrStdout()
				state := resp.State
				fmt.Fprintf(stdout, "Status:  %s\n", state.Status)
				if strings.TrimSpace(state.Title) != "" {
					fmt.Fprintf(stdout, "Title:   %s\n", state.Title)
				}
				if strings.TrimSpace(state.Artist) != "" {
					fmt.Fprintf(stdout, "Artist:  %s\n", state.Artist)
				}
				if strings.TrimSpace(state.Album) != "" {
					fmt.Fprintf(stdout, "Album:   %s\n", state.Album)
				}
				fmt.Fprintf(stdout, "Shuffle: %s\n", yesNo(state.ShuffleActive))
				fmt.Fprintf(stdout, "Repeat:  %s\n", yesNo(state.RepeatActive))
				if resp.Backend != "" {
					fmt.Fprintf(stdout, "Backend: %s\n", resp.Backend)
				}
				return nil
			})
		},
	}
	nowCmd.Flags().BoolVar(&nowJSON, "json", false, "Emit playback state as JSON")

	return []*cobra.Command{playerCmd, nowCmd}
}

func newPlayerActionCommand(ctx *commandContext, action media.Action) *cobra.Command {
	name := string(action)
	return &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Send the %s action", name),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Control(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Sent %s to %s\n", resp.Action, resp.Backend)
				return nil
			})
		},
	}
}
