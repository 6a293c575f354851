package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrdesk/review-api/internal/models"
)

func TestStatusLedgerDefaultsToReview(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page_status.json")
	l, err := OpenStatusLedger(path)
	require.NoError(t, err)

	assert.Equal(t, models.PageStateReview, l.Status(1))
	assert.Equal(t, models.PageStateReview, l.Status(42))
	assert.Equal(t, 0, l.ApprovedCount())
}

func TestStatusLedgerApprovePersistsBeforeStateChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page_status.json")
	l, err := OpenStatusLedger(path)
	require.NoError(t, err)

	require.NoError(t, l.Approve(3))
	assert.Equal(t, models.PageStateApproved, l.Status(3))

	// the file on disk already reflects the approval
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var stored map[string]models.PageState
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, models.PageStateApproved, stored["3"])
}

func TestStatusLedgerApproveIsOneDirectional(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page_status.json")
	l, err := OpenStatusLedger(path)
	require.NoError(t, err)

	require.NoError(t, l.Approve(1))
	err = l.Approve(1)
	require.ErrorIs(t, err, ErrAlreadyApproved)
	assert.Equal(t, models.PageStateApproved, l.Status(1))
}

func TestStatusLedgerApproveFailsClosedWhenWriteFails(t *testing.T) {
	// point the ledger at a directory so the write fails
	dir := t.TempDir()
	l, err := OpenStatusLedger(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	l.path = dir

	require.Error(t, l.Approve(1))
	assert.Equal(t, models.PageStateReview, l.Status(1))
}

func TestStatusLedgerReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page_status.json")
	l, err := OpenStatusLedger(path)
	require.NoError(t, err)
	require.NoError(t, l.Approve(2))
	require.NoError(t, l.Approve(5))

	reloaded, err := OpenStatusLedger(path)
	require.NoError(t, err)
	assert.Equal(t, models.PageStateApproved, reloaded.Status(2))
	assert.Equal(t, models.PageStateApproved, reloaded.Status(5))
	assert.Equal(t, models.PageStateReview, reloaded.Status(1))
	assert.Equal(t, 2, reloaded.ApprovedCount())
}

func TestTextLedgerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extracted_text.json")
	l, err := OpenTextLedger(path)
	require.NoError(t, err)

	require.NoError(t, l.SaveText(1, "first page"))
	require.NoError(t, l.SaveText(2, "second page"))
	require.NoError(t, l.SaveText(1, "first page, revised"))

	reloaded, err := OpenTextLedger(path)
	require.NoError(t, err)
	assert.Equal(t, "first page, revised", reloaded.Text(1))
	assert.Equal(t, "second page", reloaded.Text(2))
	assert.Equal(t, "", reloaded.Text(3))
	assert.Equal(t, []int{1, 2}, reloaded.Pages())
}

func TestTextLedgerPreservesWireFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extracted_text.json")
	seed := `[{"1": "alpha"}, {"2": "beta"}]`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	l, err := OpenTextLedger(path)
	require.NoError(t, err)
	assert.Equal(t, "alpha", l.Text(1))

	require.NoError(t, l.SaveText(3, "gamma"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var items []map[string]string
	require.NoError(t, json.Unmarshal(raw, &items))
	require.Len(t, items, 3)
	assert.Equal(t, "alpha", items[0]["1"])
	assert.Equal(t, "beta", items[1]["2"])
	assert.Equal(t, "gamma", items[2]["3"])
}

func TestTextLedgerMissingFile(t *testing.T) {
	l, err := OpenTextLedger(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, "", l.Text(1))
	assert.Empty(t, l.Pages())
}
