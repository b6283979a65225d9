// Package main provides layoutctl, an offline companion for venue layouts.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"venuelayout/internal/editor"
	"venuelayout/internal/layouts"
	"venuelayout/internal/shared/config"
	"venuelayout/internal/shared/middleware"
	"venuelayout/internal/templates"
	"venuelayout/internal/tiers"
	"venuelayout/pkg/geometry"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var templatesDir string

	cmd := &cobra.Command{
		Use:   "layoutctl",
		Short: "Inspect, script and classify venue layouts",
		Long: `layoutctl works on layout JSON documents and the template catalog
without a running server.

Examples:
  layoutctl templates                       # List builtin and file templates
  layoutctl templates show theater          # Print a template as a layout
  layoutctl grid --rows 5 --seats 12        # Print a generated seat grid
  layoutctl replay session.yaml -o out.json # Replay an editing script
  layoutctl classify out.json --premium 200 # Tier every seat of a layout
`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&templatesDir, "templates-dir", config.Load().Templates.Dir, "Directory of YAML layout templates")

	catalog := func() (*templates.Catalog, error) {
		c, err := templates.NewDefaultCatalog()
		if err != nil {
			return nil, err
		}
		fileTemplates, err := templates.LoadDir(templatesDir)
		if err != nil {
			return nil, err
		}
		c.SetFileTemplates(fileTemplates)
		return c, nil
	}

	cmd.AddCommand(templatesCmd(catalog))
	cmd.AddCommand(gridCmd())
	cmd.AddCommand(replayCmd(catalog))
	cmd.AddCommand(classifyCmd())
	cmd.AddCommand(tokenCmd())
	return cmd
}

func templatesCmd(catalog func() (*templates.Catalog, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List layout templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCATEGORY\tSEATED\tSTANDING\tSOURCE")
			for _, tpl := range c.List() {
				capacity := tpl.Capacity()
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", tpl.Name, tpl.Category, capacity.TotalSeated, capacity.TotalStanding, tpl.Source)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Print a template as a draft layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog()
			if err != nil {
				return err
			}
			tpl, err := c.Get(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), tpl.NewLayout(""))
		},
	})
	return cmd
}

func gridCmd() *cobra.Command {
	var (
		grid layouts.GridSpec
		name string
	)

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Generate a layout holding one seat grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seats, err := layouts.NewSeatGrid(grid)
			if err != nil {
				return err
			}
			layout := layouts.NewVenueLayout(name, layouts.DefaultCanvas())
			if err := layout.AddElements(seats...); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), layout)
		},
	}

	cmd.Flags().StringVar(&name, "name", "Seat grid", "Layout name")
	cmd.Flags().IntVar(&grid.Rows, "rows", 5, "Number of rows")
	cmd.Flags().IntVar(&grid.SeatsPerRow, "seats", 10, "Seats per row")
	cmd.Flags().Float64Var(&grid.Origin.X, "x", 100, "Left edge of the first seat")
	cmd.Flags().Float64Var(&grid.Origin.Y, "y", 200, "Top edge of the first row")
	cmd.Flags().Float64Var(&grid.SeatSpacing, "seat-spacing", 0, "Gap between seats")
	cmd.Flags().Float64Var(&grid.RowSpacing, "row-spacing", 0, "Gap between rows")
	cmd.Flags().StringVar(&grid.StartRow, "start-row", "A", "Label of the first row")
	cmd.Flags().StringVar(&grid.Section, "section", "", "Section of every seat")
	return cmd
}

func replayCmd(catalog func() (*templates.Catalog, error)) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay an editing script and print the resulting layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			script, err := LoadScript(args[0])
			if err != nil {
				return err
			}
			c, err := catalog()
			if err != nil {
				return err
			}

			settings := editor.SettingsFromConfig(config.Load().Editor)
			ed, err := Replay(ctx, script, settings, c, layouts.NewMemoryStore())
			if err != nil {
				return err
			}

			capacity := ed.Capacity()
			fmt.Fprintf(cmd.ErrOrStderr(), "%d elements, %d seated, %d standing, unsaved changes: %t\n",
				len(ed.Elements()), capacity.TotalSeated, capacity.TotalStanding, ed.Dirty())

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			return writeJSON(out, ed.Layout())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the layout to a file instead of stdout")
	return cmd
}

func classifyCmd() *cobra.Command {
	thresholds := tiers.DefaultThresholds()
	var points bool

	cmd := &cobra.Command{
		Use:   "classify <layout.json>",
		Short: "Assign a price tier to every seat of a layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := thresholds.Validate(config.Load().Tiers.MinGap); err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var layout layouts.VenueLayout
			if err := json.Unmarshal(data, &layout); err != nil {
				return fmt.Errorf("invalid layout %s: %w", args[0], err)
			}

			set := thresholds.BoundarySet()
			assigned := tiers.ClassifySeats(layout.Elements, set)
			if points {
				return writeSeatTiers(cmd.OutOrStdout(), layout.Elements, assigned)
			}

			counts := tiers.CountByTier(assigned)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIER\tSEATS")
			for _, tier := range []tiers.Tier{tiers.TierPremium, tiers.TierGold, tiers.TierSilver, tiers.TierBronze, tiers.TierNormal} {
				fmt.Fprintf(w, "%s\t%d\n", tier, counts[tier])
			}
			return w.Flush()
		},
	}

	cmd.Flags().Float64Var(&thresholds.PremiumY, "premium", thresholds.PremiumY, "Premium boundary Y")
	cmd.Flags().Float64Var(&thresholds.GoldY, "gold", thresholds.GoldY, "Gold boundary Y")
	cmd.Flags().Float64Var(&thresholds.SilverY, "silver", thresholds.SilverY, "Silver boundary Y")
	cmd.Flags().Float64Var(&thresholds.BronzeY, "bronze", thresholds.BronzeY, "Bronze boundary Y")
	cmd.Flags().BoolVar(&points, "seats", false, "List the tier of each seat")
	return cmd
}

func writeSeatTiers(out io.Writer, elements []layouts.LayoutElement, assigned map[string]tiers.Tier) error {
	type row struct {
		label  string
		center geometry.Point
		tier   tiers.Tier
	}
	rows := make([]row, 0, len(assigned))
	for _, el := range elements {
		seat, ok := el.Seat()
		if !ok {
			continue
		}
		rows = append(rows, row{label: fmt.Sprintf("%s%d", seat.Row, seat.Number), center: el.Bounds().Center(), tier: assigned[el.ID]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].center.Y != rows[j].center.Y {
			return rows[i].center.Y < rows[j].center.Y
		}
		return rows[i].center.X < rows[j].center.X
	})

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SEAT\tX\tY\tTIER")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%s\n", r.label, r.center.X, r.center.Y, r.tier)
	}
	return w.Flush()
}

func tokenCmd() *cobra.Command {
	var userID, email, role string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := middleware.IssueAccessToken(config.Load(), userID, email, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "layoutctl", "user_id claim")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringVar(&role, "role", middleware.RoleAdmin, "role claim")
	return cmd
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
