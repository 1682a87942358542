package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <video-id>",
	Short: "Open a video for playback and record a view",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid video id %q: %w", args[0], err)
	}
	ctx := cmd.Context()
	app, cleanup, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	item, err := app.lookup(ctx, id)
	if err != nil {
		return err
	}
	defer app.Playback.Close()

	views, err := app.Playback.Open(ctx, id, item.Views)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, infoStyle.Render(item.Title))
	fmt.Fprintf(out, "status: %s\nviews:  %d\nlikes:  %d\n", item.Status, views, item.Likes)
	fmt.Fprintf(out, "video:  %s\n", item.VideoURL)
	if item.ThumbnailURL != nil {
		fmt.Fprintf(out, "thumb:  %s\n", *item.ThumbnailURL)
	}
	return nil
}
