package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rgehrsitz/ssbenefit/internal/config"
	"github.com/rgehrsitz/ssbenefit/internal/server"
	"github.com/rgehrsitz/ssbenefit/internal/wageindex"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve benefit calculations over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		addr := a.settings.Server.Addr
		if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
			addr = flagAddr
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(a.engine, a.logger, server.Options{
			Addr:               addr,
			ReadTimeout:        time.Duration(a.settings.Server.ReadTimeoutSeconds) * time.Second,
			MaxRequestBodySize: a.settings.Server.MaxRequestBodySize,
		})
		a.logger.Info("listening", "addr", addr)
		return srv.ListenAndServe(ctx)
	},
}

var wageIndexCmd = &cobra.Command{
	Use:   "wage-index",
	Short: "Show the wage index, contribution base and COLA reference data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		if file == "" {
			settingsPath, _ := cmd.Flags().GetString("settings")
			settings, err := config.LoadSettings(settingsPath)
			if err != nil {
				return err
			}
			file = settings.WageIndex.File
		}
		table, err := wageindex.Load(file)
		if err != nil {
			return err
		}

		entries := table.Entries()
		if year, _ := cmd.Flags().GetInt("year"); year != 0 {
			entry, err := table.Lookup(year)
			if err != nil {
				return err
			}
			entries = []wageindex.Entry{entry}
		}

		w := cmd.OutOrStdout()
		meta := table.Metadata()
		fmt.Fprintf(w, "WAGE INDEX (%s, cutoff year %d)\n", meta.Description, meta.CutoffYear)
		fmt.Fprintln(w, strings.Repeat("=", 60))
		fmt.Fprintf(w, "%-6s %18s %18s %10s\n", "Year", "Avg Wage Index", "Contribution Base", "COLA %")
		fmt.Fprintln(w, strings.Repeat("-", 60))
		for _, e := range entries {
			marker := ""
			if e.Year == meta.CutoffYear {
				marker = " *"
			}
			fmt.Fprintf(w, "%-6d %18s %18s %10s%s\n", e.Year, e.AverageWageIndex.StringFixed(2),
				e.ContributionBase.StringFixed(0), e.COLARate.StringFixed(1), marker)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")

	wageIndexCmd.Flags().Int("year", 0, "Show a single year")
	wageIndexCmd.Flags().String("file", "", "Wage index dataset (default: settings wage_index.file or the built-in data)")
}
