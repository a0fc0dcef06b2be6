package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"honnef.co/go/vpath"
)

// job is a batch of tasks, read from a TOML or YAML file:
//
//	[[tasks]]
//	name = "badge"
//	command = "union"
//	paths = ["M 0 0 L 10 0 L 10 10 Z", "M 5 5 L 15 5 L 15 15 Z"]
//	output = "badge.txt"
type job struct {
	Tasks []task `toml:"tasks" yaml:"tasks"`
}

// loadJob decodes a job, choosing the format by the file extension.
// Unknown keys are errors.
func loadJob(name string, data []byte) (*job, error) {
	var j job
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&j); err != nil {
			var (
				derr *toml.DecodeError
				serr *toml.StrictMissingError
			)
			if errors.As(err, &serr) {
				return nil, fmt.Errorf("%s: unknown keys:\n%s", name, serr.String())
			}
			if errors.As(err, &derr) {
				row, col := derr.Position()
				return nil, fmt.Errorf("%s:%d:%d: %w", name, row, col, err)
			}
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&j); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s: unsupported job file extension %q", errUsage, name, ext)
	}
	for i := range j.Tasks {
		if j.Tasks[i].Command == "" {
			return nil, fmt.Errorf("%s: task %d has no command", name, i+1)
		}
	}
	return &j, nil
}

// runJobs runs the tasks of each job file in order, stopping at the first
// failure. Relative file names in a job are resolved against the job
// file's directory.
func runJobs(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: run needs at least one job file", errUsage)
	}
	for _, name := range args {
		data, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		j, err := loadJob(name, data)
		if err != nil {
			return err
		}
		dir := filepath.Dir(name)
		vpath.Logger().Info("running job", "file", name, "tasks", len(j.Tasks))
		for i := range j.Tasks {
			t := &j.Tasks[i]
			if t.Font != "" && !filepath.IsAbs(t.Font) {
				t.Font = filepath.Join(dir, t.Font)
			}
			if err := t.exec(stdout, dir); err != nil {
				return fmt.Errorf("%s: task %d (%s): %w", name, i+1, t, err)
			}
		}
	}
	return nil
}
