package rates

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/networth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage(t *testing.T) {
	s := &FileStorage{Path: filepath.Join(t.TempDir(), "cache", "rates.json")}

	table, at, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, table, "missing file")
	assert.True(t, at.IsZero())

	saved := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	in := networth.ExchangeRates{}
	in.Set("EUR", "USD", networth.D("1.1342"))
	in.Set("EUR", "addr:0xabc", networth.D("0.0001"))
	require.NoError(t, s.Save(in, saved))

	table, at, err = s.Load()
	require.NoError(t, err)
	assert.True(t, saved.Equal(at), "saved at %s", at)
	assert.Equal(t, 2, table.Len())
	assertRate(t, "1.1342", table["EUR"]["USD"])
	assertRate(t, "0.0001", table["EUR"]["addr:0xabc"])

	_, err = os.Stat(s.Path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file left behind")
}

func TestFileStorageCorrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, _, err := (&FileStorage{Path: path}).Load()
	assert.ErrorContains(t, err, "failed to parse rates")
}
