// Copyright 2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ericwq/vtline/keys"
	"gopkg.in/yaml.v3"
)

var ErrEmptySuite = errors.New("suite has no steps")

type fileStep struct {
	Input  string `yaml:"input"`
	Buffer string `yaml:"buffer"`
	Cursor int    `yaml:"cursor"`
	Bells  int    `yaml:"bells"`
}

type fileSuite struct {
	Name   string     `yaml:"name"`
	Prompt *string    `yaml:"prompt"`
	Strict bool       `yaml:"strict"`
	Steps  []fileStep `yaml:"steps"`
}

// LoadFile reads a suite from a YAML file. Inputs are written in key
// notation, see [keys.Table.Encode]. The suite name defaults to the file
// name.
func LoadFile(path string, table *keys.Table) (*Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Load(f, table)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

func Load(r io.Reader, table *keys.Table) (*Suite, error) {
	var fs fileSuite
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptySuite
		}
		return nil, err
	}
	if len(fs.Steps) == 0 {
		return nil, ErrEmptySuite
	}

	s := &Suite{Name: fs.Name, Prompt: DefaultPrompt, Strict: fs.Strict}
	if fs.Prompt != nil {
		s.Prompt = *fs.Prompt
	}

	for i, v := range fs.Steps {
		seq, err := table.Encode(v.Input)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		if v.Cursor < 0 || v.Bells < 0 {
			return nil, fmt.Errorf("step %d: negative cursor or bell count", i+1)
		}
		s.Steps = append(s.Steps, Step{Input: string(seq), Buffer: v.Buffer, Cursor: v.Cursor, Bells: v.Bells})
	}
	return s, nil
}
