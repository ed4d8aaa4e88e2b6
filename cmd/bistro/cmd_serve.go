package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bistrohq/bistro/app/routes"
	"github.com/bistrohq/bistro/config"
	"github.com/bistrohq/bistro/internal/server"
	"github.com/bistrohq/bistro/pkg/database"
	"github.com/bistrohq/bistro/pkg/router"
	"github.com/bistrohq/bistro/pkg/ws"
)

// bistro serve — start the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// bistro route:list — print all registered named routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		if err := database.Connect(); err != nil {
			return err
		}
		defer database.Disconnect(cmd.Context())

		r := router.New()
		routes.RegisterAPI(r, database.DB, ws.NewHub())

		table := r.Routes()
		names := make([]string, 0, len(table))
		for name := range table {
			names = append(names, name)
		}
		sort.Strings(names)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tPATH")
		fmt.Fprintln(w, "----\t----")
		for _, name := range names {
			fmt.Fprintf(w, "%s\t%s\n", name, table[name])
		}
		return w.Flush()
	},
}
