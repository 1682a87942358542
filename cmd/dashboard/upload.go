package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bionicotaku/lingo-services-videohub/internal/clients"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var (
	uploadTitle       string
	uploadDescription string
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a video file",
	Long:  `Upload a video file to the uploader API. When --title is omitted you are prompted for one.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadTitle, "title", "t", "", "Video title (required)")
	uploadCmd.Flags().StringVarP(&uploadDescription, "description", "d", "", "Optional description")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	path := args[0]
	if strings.TrimSpace(uploadTitle) == "" {
		if err := huh.NewInput().
			Title("Title").
			Description(filepath.Base(path)).
			Value(&uploadTitle).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("title is required")
				}
				return nil
			}).
			Run(); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	app, cleanup, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	var (
		reply *clients.UploadReply
		ran   bool
	)
	upload := func() {
		ran = true
		reply, err = app.Uploader.UploadFile(ctx, path, uploadTitle, uploadDescription)
	}
	_ = spinner.New().
		Title("Uploading " + filepath.Base(path)).
		Action(upload).
		Run()
	if !ran {
		upload()
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✓ %s (%s)", reply.Message, reply.Status)))
	fmt.Fprintln(cmd.OutOrStdout(), infoStyle.Render("video id: "+reply.VideoID.String()))
	return nil
}
