package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tutorselect/internal/config"
	"tutorselect/internal/domain"
	"tutorselect/internal/roster"
)

var initForce bool

// sampleTutors seeds a new roster
var sampleTutors = []domain.Tutor{
	{ID: "tutor-1", Name: "Maria Silva", CPF: "123.456.789-00", Phone: "(11) 98765-4321"},
	{ID: "tutor-2", Name: "João Souza", CPF: "987.654.321-00", Phone: "(21) 91234-5678"},
	{ID: "tutor-3", Name: "Ana Pereira", CPF: "456.789.123-00", Phone: "(31) 99876-5432"},
}

// initCmd writes a default config and a sample roster
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file and a sample tutor roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := config.NewConfigServiceForPath(opts.configPath)
		out := cmd.OutOrStdout()

		cfg := config.DefaultConfig()
		if _, err := os.Stat(opts.configPath); err == nil && !initForce {
			fmt.Fprintf(out, "Config %s already exists, keeping it\n", opts.configPath)
			if cfg, err = svc.Load(); err != nil {
				return err
			}
		} else {
			if opts.rosterPath != "" {
				cfg.RosterPath = opts.rosterPath
			}
			if opts.records != "" {
				cfg.RecordsPath = opts.records
			}
			if err := svc.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote config %s\n", opts.configPath)
		}

		if _, err := os.Stat(cfg.RosterPath); err == nil && !initForce {
			fmt.Fprintf(out, "Roster %s already exists, keeping it\n", cfg.RosterPath)
			return nil
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to check roster: %w", err)
		}
		if err := roster.Save(cfg.RosterPath, sampleTutors); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote sample roster %s with %d tutors\n", cfg.RosterPath, len(sampleTutors))
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing files")
}
