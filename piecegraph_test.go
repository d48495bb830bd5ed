package piecegraph

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDungeon(t *testing.T, seed int64) *Piecegraph {
	cfg := DefaultConfig()
	cfg.TargetPieces = 20
	cfg.OverlapRadius = 1.5
	cfg.Seed = seed

	pg, err := New(cfg, dungeonLibrary())
	require.NoError(t, err)
	return pg
}

func TestJSONRoundTrip(t *testing.T) {
	pg := buildDungeon(t, 11)

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, pg.SaveJSON(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Piecegraph
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, pg.Seed, got.Seed)
	assert.Equal(t, pg.Stats, got.Stats)
	require.Len(t, got.Pieces, len(pg.Pieces))
	assert.Equal(t, pg.Fingerprint(), got.Fingerprint())
}

func TestFingerprintChangesWithLayout(t *testing.T) {
	pg := buildDungeon(t, 11)
	before := pg.Fingerprint()

	pg.Pieces[len(pg.Pieces)-1].Position.X += 0.5
	assert.NotEqual(t, before, pg.Fingerprint())
}

func TestPiece(t *testing.T) {
	pg := buildDungeon(t, 12)

	p, err := pg.Piece(0)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Handle)
	assert.Equal(t, 0, p.Depth)
	assert.NotNil(t, p.Prototype())

	_, err = pg.Piece(len(pg.Pieces))
	assert.Error(t, err)
	_, err = pg.Piece(-1)
	assert.Error(t, err)
}

func TestLinks(t *testing.T) {
	pg, err := New(linearConfig(3), tunnelLibrary())
	require.NoError(t, err)

	links := pg.Links()
	require.Len(t, links, len(pg.Pieces)-1)
	for _, l := range links {
		assert.Less(t, l[0].Piece, l[1].Piece)
	}
}

func TestPreview(t *testing.T) {
	pg := buildDungeon(t, 13)

	im := pg.Preview(nil)
	assert.Greater(t, im.Bounds().Dx(), 0)
	assert.Greater(t, im.Bounds().Dy(), 0)

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, pg.SavePreview(path, DefaultScheme()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
