package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export <case-id>",
	Short: "Export a case's synthesis to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		caseID := args[0]

		var data []byte
		var err error
		var ext string
		switch exportFormat {
		case "pdf":
			data, err = a.exportClient.PDF(cmd.Context(), caseID)
			ext = "pdf"
		case "docx", "word":
			data, err = a.exportClient.Word(cmd.Context(), caseID)
			ext = "docx"
		default:
			return fmt.Errorf("unknown export format %q (want pdf or docx)", exportFormat)
		}
		if err != nil {
			return err
		}

		path := filepath.Join(a.cfg.ExportDir, fmt.Sprintf("%s-synthesis.%s", caseID, ext))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to save export: %w", err)
		}
		fmt.Printf("Saved %s (%d bytes)\n", path, len(data))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "pdf", "export format: pdf or docx")
}
