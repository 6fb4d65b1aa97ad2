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

func TestRunUpdateNames(t *testing.T) {
	t.Setenv("REBALANCE_DATA_PATH", "")
	logger = zap.NewNop()
	ws := t.TempDir()
	configPath = ""
	dataPath = filepath.Join(ws, "enemies_proto.json")
	proverbsPath = filepath.Join(ws, "proverbs.json")
	t.Cleanup(func() { configPath, dataPath, proverbsPath = "", "", "" })

	require.NoError(t, os.WriteFile(dataPath, []byte(`[{"id":"PRV-E001","name":"旧"},{"id":"PRV-E2","name":"二"}]`), 0644))
	require.NoError(t, os.WriteFile(proverbsPath, []byte(`[{"id":1,"monsterName":"新"},{"id":2,"monsterName":"二"}]`), 0644))

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())

	require.NoError(t, runUpdateNames(cmd, nil))
	assert.Contains(t, out.String(), "Updated 1 monster names")

	got, err := os.ReadFile(dataPath)
	require.NoError(t, err)
	assert.Equal(t, "新", gjson.GetBytes(got, "0.name").String())
	assert.Equal(t, "二", gjson.GetBytes(got, "1.name").String())
}
