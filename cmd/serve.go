package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/itsderek23/subtle/config"
	"github.com/itsderek23/subtle/internal/api"
	"github.com/itsderek23/subtle/internal/logging"
)

func newServeCmd() *cobra.Command {
	var port int
	var host string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the session explorer HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if host != "" {
				cfg.Server.Host = host
			}
			if port != 0 {
				cfg.Server.Port = port
			} else if env := os.Getenv("PORT"); env != "" {
				if parsed, err := strconv.Atoi(env); err == nil {
					cfg.Server.Port = parsed
				}
			}

			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			logging.NewLogger("serve").WithField("addr", addr).Info("Listening")
			fmt.Printf("subtle listening on http://%s\n", addr)

			server := api.NewServer(cfg)
			return http.ListenAndServe(addr, server.Handler())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run the server on (default: 8000, or PORT env var)")
	cmd.Flags().StringVar(&host, "host", "", "Host to bind to (default: 127.0.0.1)")

	return cmd
}
