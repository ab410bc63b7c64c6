package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
)

const linkDoc = `<a href="https://ok.example/a">x</a> see (https://ok.example/a) and
http://broken.example/path?q=1 or 'https://flaky.example'`

func TestExtractLinks(t *testing.T) {
	links := ExtractLinks(linkDoc)

	require.Len(t, links, 4)
	assert.Equal(t, "https://ok.example/a", links[0].URL)
	assert.Equal(t, "https://ok.example/a", links[1].URL)
	assert.Equal(t, "http://broken.example/path?q=1", links[2].URL)
	assert.Equal(t, "https://flaky.example", links[3].URL)
	for _, l := range links {
		assert.Equal(t, l.URL, linkDoc[l.Start:l.End])
	}

	assert.Empty(t, ExtractLinks("ftp://nope and www.example.com"))
}

func TestLinkService_Validate(t *testing.T) {
	checker := newMockLinkChecker(map[string]domain.LinkStatus{
		"https://ok.example/a":           domain.LinkStatusValid,
		"http://broken.example/path?q=1": domain.LinkStatusInvalid,
	})
	svc := NewLinkService(checker, 2)

	report, err := svc.Validate(context.Background(), linkDoc)
	require.NoError(t, err)

	assert.Len(t, report.Links, 4)
	assert.Len(t, report.Checks, 3)
	assert.Equal(t, 1, report.Valid)
	assert.Equal(t, 1, report.Invalid)
	assert.Equal(t, 1, report.Pending)
	assert.Equal(t, domain.LinkStatusWarn, report.Checks["https://flaky.example"].Status)
	assert.Equal(t, 1, checker.calls["https://ok.example/a"], "duplicate URLs are checked once")
}

func TestLinkService_NoChecker(t *testing.T) {
	svc := NewLinkService(nil, 4)

	report, err := svc.Validate(context.Background(), linkDoc)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Pending)
	for _, c := range report.Checks {
		assert.Equal(t, domain.LinkStatusPending, c.Status)
	}
}

func TestLinkService_NoLinks(t *testing.T) {
	svc := NewLinkService(newMockLinkChecker(nil), 0)

	report, err := svc.Validate(context.Background(), "nothing to see")
	require.NoError(t, err)
	assert.Empty(t, report.Links)
	assert.Zero(t, report.Valid+report.Invalid+report.Pending)
}

func TestLinkService_CancelledContext(t *testing.T) {
	checker := newMockLinkChecker(nil)
	svc := NewLinkService(checker, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := svc.Validate(ctx, linkDoc)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Equal(t, 3, report.Pending)
}
