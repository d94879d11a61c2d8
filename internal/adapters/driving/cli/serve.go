package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/refdesk/internal/adapters/driving/httpapi"
)

var (
	serveAddr   string
	serveIngest bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the HTTP API that serves questions as Server-Sent Events.

Routes:
  GET    /health                 liveness and version
  POST   /ask                    {question, history} -> SSE answer stream
  GET    /search?q=&limit=       matching pages
  POST   /admin/login            {password} -> bearer token
  POST   /admin/upload           multipart PDF upload
  GET    /admin/files            library listing
  DELETE /admin/delete/:name     remove a library file
  GET    /admin/sources          remote sources
  POST   /admin/sources          add a remote source
  DELETE /admin/sources/:name    remove a remote source
  POST   /admin/ingest           rebuild the corpus

Admin routes need "Authorization: Bearer <token>" from /admin/login.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from config, \":5000\")")
	serveCmd.Flags().BoolVar(&serveIngest, "ingest", false, "rebuild the corpus before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	cfg := httpapi.Config{Version: version}
	if settingsService != nil {
		s := settingsService.Get()
		cfg.Addr = s.Server.Addr
		cfg.AllowedOrigins = s.Server.AllowedOrigins
		cfg.AdminPassword = s.Admin.Password
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if cfg.AdminPassword == "" {
		cmd.PrintErrln("warning: no admin password set; admin routes are disabled (run 'refdesk setup')")
	}

	if serveIngest && ingestService != nil {
		if err := ingestOnce(cmd.Context(), cmd); err != nil {
			return err
		}
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Ask:     askService,
		Search:  searchService,
		Ingest:  ingestService,
		Library: libraryService,
		Source:  sourceService,
	}, cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	cmd.Printf("refdesk listening on %s\n", cfg.Addr)
	return server.Run(cmd.Context())
}
