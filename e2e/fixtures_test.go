//go:build e2e && unix

package e2e

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

const testRoster = `
[[tutors]]
id = "t1"
name = "Maria Silva"
cpf = "123.456.789-00"
phone = "(11) 98765-4321"

[[tutors]]
id = "t2"
name = "João Souza"
cpf = "987.654.321-00"
phone = "(21) 91234-5678"

[[tutors]]
id = "t3"
name = "Ana Pereira"
cpf = "456.789.123-00"
phone = "(31) 99876-5432"
`

// WorkspaceOption configures the files CreateTestWorkspace writes
type WorkspaceOption func(*workspaceOptions)

type workspaceOptions struct {
	roster     string
	rosterName string
}

// WithRoster replaces the default roster; an empty content writes no roster at all
func WithRoster(name, content string) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.rosterName = name
		o.roster = content
	}
}

// CreateTestWorkspace creates a temporary directory holding a roster
func (tf *TUITestFramework) CreateTestWorkspace(options ...WorkspaceOption) (string, error) {
	opts := workspaceOptions{roster: testRoster, rosterName: "tutors.toml"}
	for _, o := range options {
		o(&opts)
	}

	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir

	if opts.roster != "" {
		path := filepath.Join(tmpDir, opts.rosterName)
		if err := os.WriteFile(path, []byte(opts.roster), 0644); err != nil {
			return "", fmt.Errorf("failed to write roster: %w", err)
		}
	}
	tf.rosterName = opts.rosterName
	return tmpDir, nil
}

// workspaceArgs points the app at the workspace files
func (tf *TUITestFramework) workspaceArgs() []string {
	if tf.workspace == "" {
		return nil
	}
	return []string{
		"--config", filepath.Join(tf.workspace, "config.toml"),
		"--roster", filepath.Join(tf.workspace, tf.rosterName),
		"--records", tf.RecordsPath(),
	}
}

// RecordsPath is where the app saves animals
func (tf *TUITestFramework) RecordsPath() string {
	return filepath.Join(tf.workspace, "animals.jsonl")
}

// ReadRecords decodes the saved animals
func (tf *TUITestFramework) ReadRecords() ([]map[string]any, error) {
	f, err := os.Open(tf.RecordsPath())
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var recs []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, scanner.Err()
}

// RunCLI runs a non-interactive command against the workspace
func (tf *TUITestFramework) RunCLI(args ...string) (string, error) {
	all := append(append([]string{}, args...), tf.workspaceArgs()...)
	cmd := exec.Command(binPath, all...)
	cmd.Env = append(os.Environ(), "HOME="+tf.workspace)
	out, err := cmd.CombinedOutput()
	return string(out), err
}
