package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repoactivity/internal/dateutil"
	"repoactivity/internal/domain"
)

func TestWriteTopAuthors(t *testing.T) {
	var buf bytes.Buffer
	WriteTopAuthors(&buf, []domain.AuthorTally{
		{Name: "Alice", Count: 5},
		{Name: "Bob", Count: 3},
	})

	out := buf.String()
	assert.Contains(t, out, "  N  Name")
	assert.Contains(t, out, "  1. Alice                          |   5")
	assert.Contains(t, out, "  2. Bob                            |   3")
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, "PR", domain.Summary{Open: 2, Closed: 7, Old: 1, MedianOpenAgeDays: 22.5})

	out := buf.String()
	assert.Contains(t, out, "| Open PR = 2")
	assert.Contains(t, out, "| Closed PR = 7")
	assert.Contains(t, out, "| Old PR = 1")
	assert.Contains(t, out, "| Median open age (days) = 22.5")
}

func TestWriteSummary_NoOpenItems(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, "Issues", domain.Summary{Closed: 4})

	out := buf.String()
	assert.Contains(t, out, "| Open Issues = 0")
	assert.NotContains(t, out, "Median")
}

func TestWriteHeader(t *testing.T) {
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	window := dateutil.Window{Start: &start}

	var buf bytes.Buffer
	WriteHeader(&buf, domain.RepositoryRef{Owner: "golang", Name: "go"}, "master", window)

	out := buf.String()
	assert.Contains(t, out, "repo = go")
	assert.Contains(t, out, "owner = golang")
	assert.Contains(t, out, "branch = master")
	assert.Contains(t, out, "start date = 2020-01-01")
	assert.Contains(t, out, "end date = none")
	// The banner rule spans the full console width.
	assert.Contains(t, out, strings.Repeat("=", 80))
}

func TestWriteJSON(t *testing.T) {
	end := time.Date(2020, time.February, 1, 0, 0, 0, 0, time.UTC)
	doc := Document{
		Repository:   domain.RepositoryRef{Owner: "golang", Name: "go"},
		Branch:       "master",
		End:          &end,
		TopAuthors:   []domain.AuthorTally{{Name: "Alice", Count: 5}},
		PullRequests: domain.Summary{Open: 2, Closed: 1},
		Issues:       domain.Summary{Closed: 4, Old: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, doc))

	var decoded Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, doc, decoded)
	// The absent start bound is omitted entirely rather than rendered as null.
	assert.NotContains(t, buf.String(), `"start"`)
}
