package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schyrsivochter/soundchange/internal/testutil"
)

func TestRecorder_StampsAndWrites(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	rec := NewRecorder(s, testutil.NewSequenceIDGenerator(""), testClock())

	first, err := rec.Record(ctx, createTestRun("", testClock().Now()), testOutputs())
	require.NoError(t, err)
	second, err := rec.Record(ctx, createTestRun("", testClock().Now()), nil)
	require.NoError(t, err)

	assert.Equal(t, "run-0001", first.ID)
	assert.Equal(t, "run-0002", second.ID)
	assert.Equal(t, testutil.DefaultClockStart, first.StartedAt)
	assert.True(t, second.StartedAt.After(first.StartedAt))

	got, outputs, err := s.ReadRun(ctx, "run-0001")
	require.NoError(t, err)
	assert.Equal(t, first.RuleSetHash, got.RuleSetHash)
	assert.Len(t, outputs, 2)
}

func TestRecorder_Defaults(t *testing.T) {
	s := createTestStore(t)
	rec := NewRecorder(s, nil, nil)

	run, err := rec.Record(context.Background(), createTestRun("", testClock().Now()), nil)
	require.NoError(t, err)
	assert.Len(t, run.ID, 36)
	assert.False(t, run.StartedAt.IsZero())
}

func TestOutputsFromLines(t *testing.T) {
	outputs, err := OutputsFromLines([]string{"lector", "fīliam"}, []string{"leitor", "filha"})
	require.NoError(t, err)
	assert.Equal(t, []Output{
		{Seq: 0, Word: "lector", Line: "leitor"},
		{Seq: 1, Word: "fīliam", Line: "filha"},
	}, outputs)

	_, err = OutputsFromLines([]string{"a"}, nil)
	assert.Error(t, err)
}
