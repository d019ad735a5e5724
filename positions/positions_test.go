package positions

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePositions(t *testing.T, dir, signature, body string) {
	t.Helper()
	p := filepath.Join(dir, signature, "position")
	require.NoError(t, os.MkdirAll(p, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(p, "position.jsonl"), []byte(body), 0o644))
}

func TestTodayInitPositionPicksLatestBeforeDate(t *testing.T) {
	dir := t.TempDir()
	writePositions(t, dir, "agent-1", `{"date":"2024-05-30","id":0,"positions":{"CASH":100000}}
{"date":"2024-05-31","id":1,"positions":{"600519.SH":0,"CASH":90000}}
{"date":"2024-05-31","id":2,"positions":{"600519.SH":100,"601318.SH":0,"CASH":5000}}
{"date":"2024-06-03","id":3,"positions":{"600519.SH":200,"CASH":0}}
garbage
`)
	p := NewFileProvider(dir, nil)

	snap, err := p.TodayInitPosition(context.Background(), "2024-06-03", "agent-1")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-31", snap.Date)
	assert.Equal(t, int64(2), snap.ID)
	assert.Equal(t, []string{"600519.SH", "601318.SH", "CASH"}, snap.Symbols())
	assert.Equal(t, `{"600519.SH": 100, "601318.SH": 0, "CASH": 5000}`, snap.String())
}

func TestTodayInitPositionMissingFileIsEmpty(t *testing.T) {
	logger, hook := test.NewNullLogger()
	p := NewFileProvider(t.TempDir(), logger)

	snap, err := p.TodayInitPosition(context.Background(), "2024-06-03", "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Len())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestTodayInitPositionNoEarlierRecord(t *testing.T) {
	dir := t.TempDir()
	writePositions(t, dir, "agent-1", `{"date":"2024-06-03","id":0,"positions":{"CASH":100000}}`+"\n")
	p := NewFileProvider(dir, nil)

	snap, err := p.TodayInitPosition(context.Background(), "2024-06-03", "agent-1")
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Len())
}

func TestTodayInitPositionBadQuantity(t *testing.T) {
	dir := t.TempDir()
	writePositions(t, dir, "agent-1", `{"date":"2024-05-31","id":0,"positions":{"CASH":"lots"}}`+"\n")
	p := NewFileProvider(dir, nil)

	_, err := p.TodayInitPosition(context.Background(), "2024-06-03", "agent-1")
	assert.Error(t, err)
}

func TestTodayInitPositionRejectsPathSignatures(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "data", "agents")
	writePositions(t, root, "outside", `{"date":"2024-05-31","id":0,"positions":{"SECRET":42}}`+"\n")
	p := NewFileProvider(dir, nil)

	for _, sig := range []string{"../../outside", "../outside", "..", ".", "a/b", `a\b`, "/etc", ""} {
		_, err := p.TodayInitPosition(context.Background(), "2024-06-03", sig)
		assert.ErrorIs(t, err, ErrInvalidSignature, sig)
	}
	assert.NoError(t, ValidateSignature("agent-1"))
	assert.NoError(t, ValidateSignature("deepseek-chat-v3.1"))
}
