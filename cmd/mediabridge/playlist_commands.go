package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mediabridge/internal/ipc"
)

func newPlaylistCommand(ctx *commandContext) *cobra.Command {
	playlistCmd := &cobra.Command{
		Use:     "playlist",
		Aliases: []string{"playlists"},
		Short:   "Manage and launch playlists",
	}

	var listJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered playlists",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Playlists()
				if err != nil {
					return err
				}
				if listJSON {
					return writeJSON(cmd, resp)
				}

				stdout := cmd.OutOrStdout()
				if len(resp.Playlists) == 0 {
					fmt.Fprintln(stdout, "No playlists found")
					return nil
				}
				rows := make([][]string, 0, len(resp.Playlists))
				for _, summary := range resp.Playlists {
					rows = append(rows, []string{
						summary.Name,
						strconv.Itoa(summary.Tracks),
						summary.Path,
					})
				}
				table := renderTable([]string{"Name", "Tracks", "Path"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft})
				fmt.Fprintln(stdout, table)
				return nil
			})
		},
	}
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Emit playlists as JSON")

	startCmd := &cobra.Command{
		Use:   "start <name>",
		Short: "Launch a playlist in the default player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("playlist name is required")
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.PlaylistStart(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Started playlist %s (%d tracks)\n", resp.Playlist.Name, resp.Playlist.Tracks)
				return nil
			})
		},
	}

	playlistCmd.AddCommand(listCmd)
	playlistCmd.AddCommand(startCmd)
	return playlistCmd
}
