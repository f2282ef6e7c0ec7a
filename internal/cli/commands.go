package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/nhl-penalty-service/internal/app/penalties"
	domainpenalties "github.com/preston-bernstein/nhl-penalty-service/internal/domain/penalties"
	"github.com/preston-bernstein/nhl-penalty-service/internal/domain/seasons"
	"github.com/preston-bernstein/nhl-penalty-service/internal/domain/teams"
)

func newTeamCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "team <selector>",
		Short: "Penalty calls by type for a team or the league",
		Long: `Aggregate penalty calls by penalty type for one team and print the chart.

The selector is a team abbreviation, a full team name, or NHL for league
totals. Each --season adds one series.`,
		Example: `  penaltyctl team TOR --season 2015 --season 2016
  penaltyctl team "Boston Bruins" -s 2016 --format svg > bos.svg
  penaltyctl team NHL -s 2013 --format yaml`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return append([]string{teams.League}, teams.Abbreviations()...), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc *penalties.Service) error {
				spec, err := svc.TeamChart(ctx, args[0], opts.seasonIDs())
				if err != nil {
					return err
				}
				return writeSpec(cmd.OutOrStdout(), opts.format, spec)
			})
		},
	}
}

func newPenaltyCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "penalty <type>",
		Short: "Calls per team for one penalty type",
		Long: `Aggregate one penalty type across every team and print the chart.

With a single season the teams are ranked by calls; with several seasons they
keep alphabetical order so each team sits in the same slot of every series.
Teams without a call are left out.`,
		Example: `  penaltyctl penalty fighting --season 2017
  penaltyctl penalty highsticking -s 2015,2016 --format yaml`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			catalog := domainpenalties.Options()
			out := make([]string, 0, len(catalog))
			for _, o := range catalog {
				out = append(out, o.Value)
			}
			return out, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(ctx context.Context, svc *penalties.Service) error {
				spec, err := svc.PenaltyChart(ctx, args[0], opts.seasonIDs())
				if err != nil {
					return err
				}
				return writeSpec(cmd.OutOrStdout(), opts.format, spec)
			})
		},
	}
}

// Catalog lists the dropdown entries offered by the dashboard.
type Catalog struct {
	Teams     []teams.Option           `json:"teams" yaml:"teams"`
	Seasons   []seasons.Season         `json:"seasons" yaml:"seasons"`
	Penalties []domainpenalties.Option `json:"penalties" yaml:"penalties"`
}

func newOptionsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the selectable teams, seasons and penalty types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.format == FormatSVG {
				return errSVGUnsupported
			}
			return writeData(cmd.OutOrStdout(), opts.format, Catalog{
				Teams:     teams.Options(),
				Seasons:   seasons.All(),
				Penalties: domainpenalties.Options(),
			})
		},
	}
}

// seasonIDs trims the --season values and drops blanks.
func (o *rootOptions) seasonIDs() []string {
	out := make([]string, 0, len(o.seasons))
	for _, s := range o.seasons {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
