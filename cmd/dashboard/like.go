package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var likeCmd = &cobra.Command{
	Use:   "like <video-id>",
	Short: "Like a video",
	Args:  cobra.ExactArgs(1),
	RunE:  runLike,
}

func init() {
	rootCmd.AddCommand(likeCmd)
}

func runLike(cmd *cobra.Command, args []string) error {
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
	likes, err := app.Likes.Like(ctx, id, item.Likes)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("♥ %s now has %d likes", item.Title, likes)))
	return nil
}
