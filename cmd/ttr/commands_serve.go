package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"tasktaskrevolution/internal/logging"
)

func serveCmd() *cobra.Command {
	var dir, addr string
	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve a previously built static site over HTTP for local preview",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				dir = "public"
			}
			r := chi.NewRouter()
			r.Use(middleware.Logger)
			r.Handle("/*", http.FileServer(http.Dir(dir)))
			logging.L().WithField("dir", dir).WithField("addr", addr).Info("serving static site")
			fmt.Printf("serving %s on http://%s\n", dir, addr)
			return http.ListenAndServe(addr, r)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory to serve (default: public)")
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8787", "address to listen on")
	return cmd
}
