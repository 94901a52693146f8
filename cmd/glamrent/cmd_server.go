package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/766ms/Glam-rent-v1/config"
	"github.com/766ms/Glam-rent-v1/internal/payment"
	"github.com/766ms/Glam-rent-v1/internal/server"
	"github.com/766ms/Glam-rent-v1/pkg/cache"
	"github.com/766ms/Glam-rent-v1/pkg/database"
	"github.com/766ms/Glam-rent-v1/pkg/storage"
)

// glamrent run — start the HTTP server.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the HTTP server (alias: serve)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// glamrent serve — alias kept for muscle memory.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// glamrent route:list — print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		// Route inspection needs the full graph but no real backends.
		db, err := database.Open("sqlite", ":memory:")
		if err != nil {
			return err
		}
		gateway := payment.NewStripeGateway("", "", "", config.Currency())
		app := server.Build(db, cache.Disabled(), storage.Connect(), gateway)

		infos := app.Router.Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
