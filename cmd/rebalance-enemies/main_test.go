package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

func resetFlags(t *testing.T) {
	t.Helper()
	t.Setenv("REBALANCE_DATA_PATH", "")
	t.Setenv("REBALANCE_SNAPSHOT_PATH", "")
	t.Setenv("DATABASE_URL", "")
	logger = zap.NewNop()
	configPath, dataPath, snapshotPath, dsn = "", "", "", ""
	dryRun, verbose = false, false
	t.Cleanup(func() {
		configPath, dataPath, snapshotPath, dsn = "", "", "", ""
		dryRun, verbose = false, false
	})
}

func TestRunRebalance(t *testing.T) {
	resetFlags(t)
	ws := t.TempDir()
	dataPath = filepath.Join(ws, "enemies_proto.json")
	snapshotPath = filepath.Join(ws, "runs.db")
	configPath = filepath.Join(ws, "missing.yaml")
	require.NoError(t, os.WriteFile(dataPath, []byte(`[{"id":"PRV-E1","grade":7,"stageId":"A"},{"id":"PRV-E2","grade":7,"stageId":"A"}]`), 0644))

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())

	require.NoError(t, runRebalance(cmd, nil))

	assert.Contains(t, out.String(), "Backup created: "+filepath.Join(ws, "enemies_proto_backup.json"))
	assert.Contains(t, out.String(), "Updated stats for 2 enemies")
	assert.Contains(t, out.String(), "Snapshot written: "+snapshotPath)

	got, err := os.ReadFile(dataPath)
	require.NoError(t, err)
	assert.Equal(t, int64(807), gjson.GetBytes(got, "0.exp").Int())
	assert.Equal(t, "kunyomi", gjson.GetBytes(got, "1.weakness").String())
}

func TestRunRebalance_ConfigFile(t *testing.T) {
	resetFlags(t)
	ws := t.TempDir()
	table := filepath.Join(ws, "table.json")
	require.NoError(t, os.WriteFile(table, []byte(`[{"id":"PRV-E1"},{"id":"PRV-E2"}]`), 0644))
	configPath = filepath.Join(ws, "rebalance.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("data:\n  path: "+table+"\nscope:\n  max_number: 1\n"), 0644))
	dryRun = true

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())

	require.NoError(t, runRebalance(cmd, nil))
	assert.Equal(t, "Dry run: 1 enemies would be updated\n", out.String())
}

func TestRunRebalance_MissingTable(t *testing.T) {
	resetFlags(t)
	ws := t.TempDir()
	dataPath = filepath.Join(ws, "nope.json")
	configPath = filepath.Join(ws, "missing.yaml")

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetContext(context.Background())

	assert.Error(t, runRebalance(cmd, nil))
}
