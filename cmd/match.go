package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tutorselect/internal/domain"
	"tutorselect/internal/matcher"
	"tutorselect/internal/roster"
)

var matchScorer string

// matchCmd prints the tutors the selector would list for a query
var matchCmd = &cobra.Command{
	Use:   "match [query]",
	Short: "Print the tutors matching a query, as the selector filters them",
	Long: `Print the roster entries the tutor selector keeps for a query.

Scorers:
  phone    digits match the start of the phone, letters the start of the name (default)
  default  case-insensitive substring of the label, or leading digits of the label's numbers
  fuzzy    like default, ranked by fuzzy match quality`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tutors, cfg, err := loadTutors()
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		opts := roster.Options(tutors, cfg.UISettings.PhoneDelimiter)

		var results []domain.Option
		switch matchScorer {
		case "phone":
			results = matcher.Filter(opts, query, matcher.PhoneAware(cfg.UISettings.PhoneDelimiter))
		case "default":
			results = matcher.Filter(opts, query, matcher.Default)
		case "fuzzy":
			results = matcher.Rank(opts, query, matcher.Fuzzy)
		default:
			return fmt.Errorf("unknown scorer %q", matchScorer)
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, cfg.UISettings.EmptyPlaceholder)
			return nil
		}
		for _, opt := range results {
			fmt.Fprintln(out, opt.Label)
		}
		return nil
	},
}

func init() {
	matchCmd.Flags().StringVarP(&matchScorer, "scorer", "s", "phone", "scorer: phone, default or fuzzy")
}
