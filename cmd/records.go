package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"tutorselect/internal/form"
)

// recordsCmd lists the animals saved so far
var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List registered animals",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(nil)
		if err != nil {
			return err
		}
		svc := form.NewService(form.NewFileStore(cfg.RecordsPath), nil)
		recs, err := svc.Records(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(recs) == 0 {
			fmt.Fprintf(out, "No animals registered in %s\n", cfg.RecordsPath)
			return nil
		}

		// Tutor names are a nicety; records stay listable without a roster
		names := map[string]string{}
		if tutors, _, err := loadTutors(); err == nil {
			for _, t := range tutors {
				names[t.ID] = t.Name
			}
		}

		fmt.Fprintln(out, recordsTable(recs, names))
		return nil
	},
}

func recordsTable(recs []form.Record, tutorNames map[string]string) string {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		tutor := r.TutorID
		if name, ok := tutorNames[r.TutorID]; ok {
			tutor = name
		}
		rows = append(rows, []string{
			r.Name,
			r.Species,
			r.Breed,
			r.Sex,
			r.BirthDate,
			strconv.FormatFloat(r.Weight, 'f', -1, 64) + " kg",
			tutor,
		})
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Nome", "Espécie", "Raça", "Sexo", "Nascimento", "Peso", "Tutor").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		String()
}
