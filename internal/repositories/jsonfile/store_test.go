package jsonfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"portalseguranca/internal/models/entities"
	"portalseguranca/internal/repositories/jsonfile"
	"portalseguranca/internal/repositories/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadMissingCollectionIsEmpty(t *testing.T) {
	s, err := jsonfile.NewStore(t.TempDir())
	require.NoError(t, err)

	items, err := store.LoadAll[entities.Denuncia](context.Background(), s, store.Denuncias)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestStore_ReplaceThenLoad(t *testing.T) {
	dir := t.TempDir()
	s, err := jsonfile.NewStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	cams := []entities.Camera{
		{Id: 1, Nome: "Praça Central", Status: entities.CameraOnline, Type: "PTZ"},
		{Id: 2, Nome: "Terminal", Status: entities.CameraOffline},
	}
	require.NoError(t, s.Replace(ctx, store.Cameras, cams))

	loaded, err := store.LoadAll[entities.Camera](ctx, s, store.Cameras)
	require.NoError(t, err)
	assert.Equal(t, cams, loaded)

	// replace is total, not a merge
	require.NoError(t, s.Replace(ctx, store.Cameras, cams[:1]))
	loaded, err = store.LoadAll[entities.Camera](ctx, s, store.Cameras)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStore_NilSliceIsWrittenAsEmptyList(t *testing.T) {
	dir := t.TempDir()
	s, err := jsonfile.NewStore(dir)
	require.NoError(t, err)

	var none []entities.Noticia
	require.NoError(t, s.Replace(context.Background(), store.Noticias, none))

	data, err := os.ReadFile(filepath.Join(dir, "noticias.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestStore_MalformedFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "denuncias.json"), []byte("{not json"), 0o644))

	s, err := jsonfile.NewStore(dir)
	require.NoError(t, err)

	_, err = store.LoadAll[entities.Denuncia](context.Background(), s, store.Denuncias)
	assert.Error(t, err)
}

func TestStore_UnknownCollection(t *testing.T) {
	s, err := jsonfile.NewStore(t.TempDir())
	require.NoError(t, err)

	var out []entities.Camera
	err = s.Load(context.Background(), store.Collection("segredos"), &out)
	assert.ErrorIs(t, err, store.ErrUnknownCollection)

	err = s.Replace(context.Background(), store.Collection("../fora"), out)
	assert.ErrorIs(t, err, store.ErrUnknownCollection)
}

func TestStore_LooseUrgenteFlag(t *testing.T) {
	dir := t.TempDir()
	raw := `[{"id":1,"urgente":true},{"id":2,"urgente":"true"},{"id":3,"urgente":"sim"},{"id":4}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "denuncias.json"), []byte(raw), 0o644))

	s, err := jsonfile.NewStore(dir)
	require.NoError(t, err)

	items, err := store.LoadAll[entities.Denuncia](context.Background(), s, store.Denuncias)
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.True(t, bool(items[0].Urgente))
	assert.True(t, bool(items[1].Urgente))
	assert.False(t, bool(items[2].Urgente))
	assert.False(t, bool(items[3].Urgente))
}
