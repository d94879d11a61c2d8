package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage PDFs in the local library folder",
	Long: `List, add and remove the PDFs that ingestion reads from the library folder.
Changes take effect on the next 'refdesk ingest'.`,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List library files",
	Args:  cobra.NoArgs,
	RunE:  runLibraryList,
}

var libraryUploadCmd = &cobra.Command{
	Use:   "upload [file.pdf...]",
	Short: "Copy PDFs into the library",
	Long:  `Copies each PDF into the library folder under a sanitised name.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLibraryUpload,
}

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Remove a PDF from the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryDelete,
}

func init() {
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryUploadCmd)
	libraryCmd.AddCommand(libraryDeleteCmd)
	rootCmd.AddCommand(libraryCmd)
}

func runLibraryList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	files, err := libraryService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list library: %w", err)
	}

	if len(files) == 0 {
		cmd.Println("No files in the library.")
		return nil
	}

	cmd.Println("Library files:")
	for _, f := range files {
		cmd.Printf("  %-40s %10s  %s\n", f.Name, formatSize(f.Size), f.Modified.Format("2006-01-02 15:04"))
	}
	return nil
}

func runLibraryUpload(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	for _, path := range args {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if info.Size() > domain.MaxUploadBytes {
			return fmt.Errorf("%s is larger than %s", path, formatSize(domain.MaxUploadBytes))
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		name, err := libraryService.Upload(cmd.Context(), filepath.Base(path), data)
		if err != nil {
			return fmt.Errorf("uploading %s: %w", path, err)
		}
		cmd.Printf("Added %s\n", name)
	}

	cmd.Println("Run 'refdesk ingest' to update the corpus.")
	return nil
}

func runLibraryDelete(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.Delete(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("file not found: %s", args[0])
		}
		return fmt.Errorf("failed to delete: %w", err)
	}

	cmd.Printf("Deleted %s\n", args[0])
	return nil
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}
