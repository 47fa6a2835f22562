package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/plaide-ai/intake/internal/api"
	"github.com/plaide-ai/intake/internal/model"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <case-id> <file>...",
	Short: "Upload evidence files to a case",
	Long: `Upload one or more evidence files to a case. Files are validated against
the configured size and count ceilings before any network call, then uploaded
one at a time; a failing file does not abort the rest of the batch.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		caseID := args[0]

		files := make([]api.File, 0, len(args)-1)
		handles := make([]*os.File, 0, len(args)-1)
		defer func() {
			for _, h := range handles {
				h.Close()
			}
		}()

		for _, path := range args[1:] {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("cannot open %s: %w", path, err)
			}
			info, err := f.Stat()
			if err != nil {
				f.Close()
				return fmt.Errorf("cannot stat %s: %w", path, err)
			}
			handles = append(handles, f)
			files = append(files, api.File{
				Name:     filepath.Base(path),
				MimeType: mime.TypeByExtension(filepath.Ext(path)),
				Size:     info.Size(),
				Content:  f,
			})
		}

		result, err := a.uploader.Run(cmd.Context(), caseID, files, func(index int, task model.UploadTask) {
			switch task.State {
			case model.UploadUploading:
				fmt.Printf("\r%s: %d%%", task.Filename, task.Progress)
			case model.UploadProcessed:
				fmt.Printf("\r%s: done\n", task.Filename)
			case model.UploadFailed:
				fmt.Printf("\r%s: failed (%s)\n", task.Filename, task.Reason)
			}
		})
		if err != nil {
			return err
		}

		fmt.Printf("\n%d uploaded, %d failed\n", result.Succeeded, result.Failed)
		for _, t := range result.FailedTasks() {
			fmt.Printf("  retry needed: %s (%s)\n", t.Filename, t.Reason)
		}
		return nil
	},
}
