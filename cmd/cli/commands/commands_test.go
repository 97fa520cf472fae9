package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/circle-teams/internal/config"
	"github.com/jakechorley/circle-teams/pkg/core/services"
	"github.com/jakechorley/circle-teams/pkg/report"
)

const testConfig = `{
  "Obory": [
    {"Name": "Fyzika", "Kruhy": [1, 2]},
    {"Name": "Učitelství", "Kruhy": [3]}
  ],
  "Possible Teams counts": [1, 2],
  "Possible Teams sizes": [5],
  "Subteams count": 1,
  "Solver time limit": "10s"
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		output  string
		want    string
		wantErr bool
	}{
		{"xlsx from extension", "", "out.xlsx", FormatXLSX, false},
		{"yaml from extension", "", "out.yml", FormatYAML, false},
		{"stdout is yaml", "", "-", FormatYAML, false},
		{"explicit yaml", "YAML", "out.txt", FormatYAML, false},
		{"unknown extension", "", "out.csv", "", true},
		{"unknown format", "csv", "out.csv", "", true},
		{"xlsx to stdout", "xlsx", "-", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveFormat(tt.format, tt.output)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnknownCircles(t *testing.T) {
	cfg := &config.Config{Categories: []config.CategoryConfig{{Name: "Fyzika", Circles: []int{1, 2}}}}

	assert.Equal(t, []int{5, 9}, unknownCircles(cfg, map[int]int{9: 1, 1: 3, 5: 2}))
	assert.Empty(t, unknownCircles(cfg, map[int]int{2: 1}))
}

func TestLoadConfig_Cached(t *testing.T) {
	dir := t.TempDir()
	app := &AppContext{
		ConfigPath: writeFile(t, dir, "config.json", testConfig),
		Logger:     zap.NewNop(),
		Ctx:        context.Background(),
	}

	first, err := app.LoadConfig()
	require.NoError(t, err)
	second, err := app.LoadConfig()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestDistributeCmd_WritesYAML(t *testing.T) {
	dir := t.TempDir()
	app := &AppContext{
		ConfigPath: writeFile(t, dir, "config.json", testConfig),
		Logger:     zap.NewNop(),
		Ctx:        context.Background(),
	}
	counts := writeFile(t, dir, "counts.json", `{"1": 5, "2": 3}`)
	output := filepath.Join(dir, "distributions.yaml")

	cmd := DistributeCmd(app)
	cmd.SetArgs([]string{"--counts", counts, "--output", output, "--parallel", "2"})
	cmd.SetOut(&bytes.Buffer{})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var doc report.Document
	require.NoError(t, yaml.Unmarshal(data, &doc))
	require.Len(t, doc.Solutions, 2)
	assert.Equal(t, "INFEASIBLE", doc.Solutions[0].Status)
	assert.Equal(t, 4, doc.Solutions[1].Objective)
	assert.Equal(t, 2, app.Cfg.Parallelism)
}

func TestDistributeCmd_MissingCounts(t *testing.T) {
	dir := t.TempDir()
	app := &AppContext{
		ConfigPath: writeFile(t, dir, "config.json", testConfig),
		Logger:     zap.NewNop(),
		Ctx:        context.Background(),
	}

	cmd := DistributeCmd(app)
	cmd.SetArgs([]string{"--counts", filepath.Join(dir, "missing.json"), "--output", filepath.Join(dir, "out.xlsx")})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read counts file")
}

func TestWriteYAMLFile(t *testing.T) {
	cfg := &config.Config{SubteamCount: 1}
	result := &services.DistributeResult{RunID: "run-1"}
	path := filepath.Join(t.TempDir(), "out.yaml")

	require.NoError(t, writeYAMLFile(path, result, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "run_id: run-1")
}

func TestWriteYAMLFile_ReportsWriteFailure(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	cfg := &config.Config{SubteamCount: 1}
	result := &services.DistributeResult{RunID: "run-1"}

	assert.Error(t, writeYAMLFile("/dev/full", result, cfg))
}
