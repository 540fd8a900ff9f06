package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schyrsivochter/soundchange/internal/testutil"
)

func TestWriteRun_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run := createTestRun("run-0001", testClock().Now())
	run.Options.Template = "{inw} <{outw}> & {gloss}"
	require.NoError(t, s.WriteRun(ctx, run, testOutputs()))

	got, outputs, err := s.ReadRun(ctx, "run-0001")
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.True(t, run.StartedAt.Equal(got.StartedAt))
	assert.Equal(t, run.Options, got.Options)
	assert.Equal(t, run.Counts, got.Counts)
	assert.Equal(t, run.RuleSetHash, got.RuleSetHash)
	assert.Equal(t, run.RuleLanguageVersion, got.RuleLanguageVersion)
	assert.Equal(t, testOutputs(), outputs)
}

func TestWriteRun_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	run := createTestRun("run-0001", testClock().Now())

	require.NoError(t, s.WriteRun(ctx, run, testOutputs()))
	require.NoError(t, s.WriteRun(ctx, run, []Output{{Seq: 0, Word: "x", Line: "y"}}))

	_, outputs, err := s.ReadRun(ctx, "run-0001")
	require.NoError(t, err)
	assert.Equal(t, testOutputs(), outputs, "second write must not touch the first record")
}

func TestWriteRun_DuplicateSeqRollsBack(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	err := s.WriteRun(ctx, createTestRun("run-0001", testClock().Now()), []Output{
		{Seq: 0, Word: "a", Line: "a"},
		{Seq: 0, Word: "b", Line: "b"},
	})
	require.Error(t, err)

	_, _, err = s.ReadRun(ctx, "run-0001")
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestReadRun_NotFound(t *testing.T) {
	s := createTestStore(t)
	_, _, err := s.ReadRun(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	clock := testClock()
	ids := testutil.NewSequenceIDGenerator("")

	var written []string
	for i := 0; i < 3; i++ {
		run := createTestRun(ids.Generate(), clock.Now())
		require.NoError(t, s.WriteRun(ctx, run, nil))
		written = append(written, run.ID)
	}

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{written[2], written[1], written[0]},
		[]string{runs[0].ID, runs[1].ID, runs[2].ID})

	limited, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
	assert.Equal(t, written[2], limited[0].ID)
}

func TestListRuns_SameInstantOrderedByID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.WriteRun(ctx, createTestRun("b", at), nil))
	require.NoError(t, s.WriteRun(ctx, createTestRun("a", at), nil))
	require.NoError(t, s.WriteRun(ctx, createTestRun("c", at), nil))

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
	assert.Equal(t, "a", runs[2].ID)
}

func TestListRuns_Empty(t *testing.T) {
	s := createTestStore(t)
	runs, err := s.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestRunsWithRuleSet(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	clock := testClock()

	a := createTestRun("run-a", clock.Now())
	b := createTestRun("run-b", clock.Now())
	b.RuleSetHash = "other"
	require.NoError(t, s.WriteRun(ctx, a, nil))
	require.NoError(t, s.WriteRun(ctx, b, nil))

	runs, err := s.RunsWithRuleSet(ctx, "rs-hash")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-a", runs[0].ID)
}

func TestDeleteRun_CascadesOutputs(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.WriteRun(ctx, createTestRun("run-0001", testClock().Now()), testOutputs()))

	require.NoError(t, s.DeleteRun(ctx, "run-0001"))

	var n int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM outputs").Scan(&n))
	assert.Zero(t, n)

	assert.ErrorIs(t, s.DeleteRun(ctx, "run-0001"), ErrRunNotFound)
}

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}
	a, b := gen.Generate(), gen.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
	assert.Equal(t, byte('7'), a[14], "version nibble")
}

func TestMarshalOptions_NoHTMLEscaping(t *testing.T) {
	s, err := marshalOptions(RunOptions{Template: "<{outw}>&"})
	require.NoError(t, err)
	assert.Contains(t, s, `"<{outw}>&"`)

	opts, err := unmarshalOptions(s)
	require.NoError(t, err)
	assert.Equal(t, "<{outw}>&", opts.Template)
}

func TestFormatTime_SortsAsText(t *testing.T) {
	a := formatTime(time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC))
	b := formatTime(time.Date(2024, 1, 1, 0, 0, 1, 500_000_000, time.UTC))
	assert.Less(t, a, b)

	back, err := parseTime(b)
	require.NoError(t, err)
	assert.Equal(t, 500_000_000, back.Nanosecond())
}
