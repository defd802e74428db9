// Package cmd holds the tutorselect command line.
package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tutorselect/internal/config"
	"tutorselect/internal/domain"
	"tutorselect/internal/eventbus"
	"tutorselect/internal/form"
	"tutorselect/internal/roster"
	"tutorselect/internal/ui"
	"tutorselect/internal/viewport"
)

// e2eEnv makes the TUI print its ready signal
const e2eEnv = "TUTORSELECT_E2E_TEST"

// options are the flags shared by every command
type options struct {
	configPath string
	rosterPath string
	records    string
	breakpoint int
	noMouse    bool
}

var opts options

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tutorselect",
	Short: "Register animals against a searchable roster of tutors",
	Long: `tutorselect opens an animal registration form in the terminal.

The tutor is picked with a searchable selector: type letters to match the
start of a tutor's name or digits to match the start of their phone number.
On narrow terminals the option list opens as a sheet at the bottom of the
screen, on wide ones as a panel under the field.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

// Execute adds all child commands to the root command and runs it
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	defaultConfig := filepath.Join(config.DefaultDir(), config.FileName)
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", defaultConfig, "config file")
	rootCmd.PersistentFlags().StringVarP(&opts.rosterPath, "roster", "r", "", "tutors file (.toml or .yaml), overrides roster_path")
	rootCmd.PersistentFlags().StringVar(&opts.records, "records", "", "file saved animals are appended to, overrides records_path")
	rootCmd.Flags().IntVarP(&opts.breakpoint, "breakpoint", "b", 0, "width in columns below which the compact layout is used")
	rootCmd.Flags().BoolVar(&opts.noMouse, "no-mouse", false, "disable mouse support")

	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(recordsCmd)
}

// loadConfig reads the config file and applies flag overrides
func loadConfig(bus eventbus.EventBus) (*config.Config, error) {
	svc := config.WithBus(config.NewConfigServiceForPath(opts.configPath), bus)
	cfg, err := svc.Load()
	if err != nil {
		return nil, err
	}
	if opts.rosterPath != "" {
		cfg.RosterPath = opts.rosterPath
	}
	if opts.records != "" {
		cfg.RecordsPath = opts.records
	}
	if opts.breakpoint > 0 {
		cfg.UISettings.CompactBreakpoint = opts.breakpoint
	}
	if opts.noMouse {
		cfg.UISettings.Mouse = false
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command) error {
	bus := eventbus.New()
	defer bus.Close()

	cfg, err := loadConfig(bus)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg.LogPath)
	if err != nil {
		return err
	}
	defer closeLog()
	log.Printf("Starting with config %s, roster %s", opts.configPath, cfg.RosterPath)

	// A missing roster is not fatal: the form explains how to add tutors
	tutors, err := roster.LoadAndPublish(cfg.RosterPath, bus)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	bus.Subscribe(eventbus.EventAnimalSaved, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.AnimalSavedEvent); ok {
			log.Printf("Saved animal %s for tutor %s", ev.ID, ev.Record.TutorID)
		}
	})
	bus.Subscribe(eventbus.EventAnimalSaveFailed, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.AnimalSaveFailedEvent); ok {
			log.Printf("Failed to save animal %q: %v", ev.Record.Name, ev.Err)
		}
	})

	detector := viewport.NewDetector(cfg.UISettings.CompactBreakpoint)
	if w, err := viewport.TerminalWidth(int(os.Stdout.Fd())); err == nil {
		detector.Observe(w)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	service := form.NewService(form.NewFileStore(cfg.RecordsPath), bus)
	model := ui.NewModel(ctx, bus, cfg, service, tutors, detector)
	model.SetReadySignal(os.Getenv(e2eEnv) == "1")
	defer model.Teardown()

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UISettings.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, programOpts...)
	model.SetProgram(p)

	// Errors raised off the UI goroutine are shown in the status line
	unsubscribe := bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Printf("Error running program: %v", err)
		return fmt.Errorf("error running program: %w", err)
	}
	log.Printf("UI exited normally")
	return nil
}

// loadTutors reads the roster named by the flags and config, for the non-TUI commands
func loadTutors() ([]domain.Tutor, *config.Config, error) {
	cfg, err := loadConfig(nil)
	if err != nil {
		return nil, nil, err
	}
	tutors, err := roster.Load(cfg.RosterPath)
	if err != nil {
		return nil, nil, err
	}
	return tutors, cfg, nil
}
