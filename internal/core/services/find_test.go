package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

func TestFindService_FindAll(t *testing.T) {
	svc := NewFindService()

	report, err := svc.FindAll(context.Background(), "Go go GO (go)", "go")
	require.NoError(t, err)

	assert.Len(t, report.Matches, 4)
	assert.Equal(t, 0, report.Current)
	assert.Equal(t, "1 of 4", report.Label())

	empty, err := svc.FindAll(context.Background(), "abc", "zzz")
	require.NoError(t, err)
	assert.Equal(t, "No results", empty.Label())
}

func TestFindService_Navigate(t *testing.T) {
	svc := NewFindService()
	report := &domain.FindReport{Matches: make([]domain.Span, 3)}

	next := svc.Navigate(report, 1)
	assert.Equal(t, 1, next.Current)
	assert.Equal(t, 0, report.Current, "navigate must not mutate its input")

	assert.Equal(t, 0, svc.Navigate(&domain.FindReport{Matches: make([]domain.Span, 3), Current: 2}, 1).Current)
	assert.Equal(t, 2, svc.Navigate(report, -1).Current)
	assert.Equal(t, 0, svc.Navigate(&domain.FindReport{}, 1).Current)
	assert.NotNil(t, svc.Navigate(nil, 1))
}

func TestFindService_ReplaceCurrent(t *testing.T) {
	svc := NewFindService()
	ctx := context.Background()
	text := "cat\ndog\ncat"

	report, err := svc.FindAll(ctx, text, "cat")
	require.NoError(t, err)
	report = svc.Navigate(report, 1)

	res, err := svc.ReplaceCurrent(ctx, text, report, "cow")
	require.NoError(t, err)
	assert.Equal(t, "cat\ndog\ncow", res.Text)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "-cat\n+cow\n", res.Diff)

	_, err = svc.ReplaceCurrent(ctx, text, &domain.FindReport{}, "x")
	assert.ErrorIs(t, err, ErrNothingToReplace)
	assert.ErrorIs(t, err, domain.ErrEmptyInput)

	_, err = svc.ReplaceCurrent(ctx, "short", &domain.FindReport{Matches: []domain.Span{{Start: 2, End: 40}}}, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidScope)
}

func TestFindService_ReplaceAll(t *testing.T) {
	svc := NewFindService()
	ctx := context.Background()

	res, err := svc.ReplaceAll(ctx, "One one ONE two", "one", "1")
	require.NoError(t, err)
	assert.Equal(t, "1 1 1 two", res.Text)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, "-One one ONE two\n+1 1 1 two\n", res.Diff)

	_, err = svc.ReplaceAll(ctx, "abc", "zzz", "y")
	assert.ErrorIs(t, err, ErrNoMatches)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.ReplaceAll(ctx, "abc", "", "y")
	assert.ErrorIs(t, err, ErrNothingToReplace)
}

func TestLineDiff(t *testing.T) {
	assert.Equal(t, "", LineDiff("same", "same"))
	assert.Equal(t, "-b\n+B\n", LineDiff("a\nb\nc\n", "a\nB\nc\n"))
	assert.Equal(t, "+d\n", LineDiff("a\n", "a\nd\n"))
}
