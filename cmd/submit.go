package cmd

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"groupcal/client"

	"github.com/spf13/cobra"
)

func newSubmitCmd() *cobra.Command {
	var (
		name, text  string
		imagePaths  []string
		year, month int
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a member's schedule as text and/or images",
		RunE: func(cmd *cobra.Command, args []string) error {
			uploads, err := loadUploads(imagePaths)
			if err != nil {
				return err
			}
			events, err := apiClient().SubmitSchedule(context.Background(), client.Submission{
				Name:        name,
				Text:        text,
				Images:      uploads,
				TargetYear:  year,
				TargetMonth: month,
			})
			if err != nil {
				return fmt.Errorf("failed to submit schedule: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Registered %d event(s)\n", len(events))
			for _, e := range events {
				fmt.Fprintf(out, "  %s %s-%s %s\n", e.EventDate, e.StartTime, e.EndTime, e.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "member name")
	cmd.Flags().StringVar(&text, "text", "", "schedule as free text")
	cmd.Flags().StringArrayVar(&imagePaths, "image", nil, "path of a schedule image (repeatable)")
	cmd.Flags().IntVar(&year, "year", 0, "target year for weekly events (default: current)")
	cmd.Flags().IntVar(&month, "month", 0, "target month for weekly events (default: current)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func loadUploads(paths []string) ([]client.Upload, error) {
	uploads := make([]client.Upload, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read image %s: %w", p, err)
		}
		mimeType := mime.TypeByExtension(filepath.Ext(p))
		if mimeType == "" {
			mimeType = http.DetectContentType(data)
		}
		uploads = append(uploads, client.Upload{Filename: filepath.Base(p), MIMEType: mimeType, Data: data})
	}
	return uploads, nil
}
