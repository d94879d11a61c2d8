package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage remote document sources",
	Long: `Remote sources are PDFs reachable through share links (Google Drive,
Dropbox or any direct download URL). Each source is fetched on every
'refdesk ingest' and stored in the corpus under its name.`,
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List remote sources",
	Args:  cobra.NoArgs,
	RunE:  runSourcesList,
}

var sourcesAddCmd = &cobra.Command{
	Use:   "add [name] [link]",
	Short: "Add a remote source",
	Args:  cobra.ExactArgs(2),
	RunE:  runSourcesAdd,
}

var sourcesRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove a remote source",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesRemove,
}

var sourcesImportCmd = &cobra.Command{
	Use:   "import [file.yaml]",
	Short: "Add sources from a YAML file",
	Long: `Adds every source listed in a YAML file. The file holds either a list
or a "sources" key with a list:

  sources:
    - name: Handbook.pdf
      link: https://drive.google.com/file/d/<id>/view
    - name: Guidelines.pdf
      link: https://www.dropbox.com/s/<id>/guidelines.pdf?dl=0

Sources whose name already exists are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runSourcesImport,
}

func init() {
	sourcesCmd.AddCommand(sourcesListCmd)
	sourcesCmd.AddCommand(sourcesAddCmd)
	sourcesCmd.AddCommand(sourcesRemoveCmd)
	sourcesCmd.AddCommand(sourcesImportCmd)
	rootCmd.AddCommand(sourcesCmd)
}

func runSourcesList(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	sources, err := sourceService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	if len(sources) == 0 {
		cmd.Println("No sources configured.")
		return nil
	}

	cmd.Println("Configured sources:")
	for _, src := range sources {
		cmd.Printf("  %s\n    %s\n", src.Name, src.Link)
	}
	return nil
}

func runSourcesAdd(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	src := domain.Source{Name: args[0], Link: args[1]}
	if err := sourceService.Add(cmd.Context(), src); err != nil {
		return fmt.Errorf("failed to add source: %w", err)
	}

	cmd.Printf("Added source %s\n", src.Name)
	return nil
}

func runSourcesRemove(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	if err := sourceService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove source: %w", err)
	}

	cmd.Printf("Removed source %s\n", args[0])
	return nil
}

func runSourcesImport(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	sources, err := parseSourcesYAML(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	added := 0
	for _, src := range sources {
		err := sourceService.Add(cmd.Context(), src)
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			cmd.Printf("Skipped %s (already exists)\n", src.Name)
		case err != nil:
			return fmt.Errorf("adding %s: %w", src.Name, err)
		default:
			added++
		}
	}

	cmd.Printf("Imported %d of %d source(s).\n", added, len(sources))
	return nil
}

// parseSourcesYAML accepts a bare list or a document with a "sources" key.
func parseSourcesYAML(data []byte) ([]domain.Source, error) {
	var doc struct {
		Sources []domain.Source `yaml:"sources"`
	}
	var list []domain.Source
	if err := yaml.Unmarshal(data, &doc); err == nil {
		list = doc.Sources
	} else if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, err
	}

	if len(list) == 0 {
		return nil, fmt.Errorf("%w: no sources found", domain.ErrInvalidInput)
	}
	return list, nil
}
