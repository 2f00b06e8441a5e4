package elsearch

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const thesaurusSample = `UTF-8
roubo|2
(assalto|substantivo)
(sinônimo|assalto)
(furto|sinônimo)
(ab|x)
poste|1
(coluna|x)
barulho|3
(ruído|x)
(zoeira|x)
(estrondo|x)
`

func TestThesaurus_Convert(t *testing.T) {
	var out bytes.Buffer
	n, err := NewThesaurus().Convert(strings.NewReader(thesaurusSample), &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, 2, n)
	require.Len(t, lines, 2)
	assert.Equal(t, "roubo, assalto, furto", lines[0])
	assert.Equal(t, "barulho, ruído, zoeira, estrondo", lines[1])
}

func TestThesaurus_MaxWords(t *testing.T) {
	var out bytes.Buffer
	th := &Thesaurus{MinSynonyms: 1, MaxWords: 1}
	_, err := th.Convert(strings.NewReader(thesaurusSample), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "barulho, ruído\n")
	assert.Contains(t, out.String(), "poste, coluna\n")
}

func TestFilterByKeywords(t *testing.T) {
	in := "# comentario\nroubo, assalto\ncasa, lar\n\nrua, via, estrada\n"
	var out bytes.Buffer

	n, err := FilterByKeywords(strings.NewReader(in), &out, SegurancaKeywords)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "roubo, assalto\nrua, via, estrada\n", out.String())
}

func TestReadSynonymsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.txt")
	require.NoError(t, os.WriteFile(path, []byte("# sinônimos\nroubo, assalto\n\nposte, luminária\n"), 0o644))

	got, err := ReadSynonymsFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"roubo, assalto", "poste, luminária"}, got)

	_, err = ReadSynonymsFile(filepath.Join(t.TempDir(), "nao-existe.txt"))
	assert.Error(t, err)
}

func TestBuildDenunciasMapping(t *testing.T) {
	tests := []struct {
		name         string
		synonyms     []string
		validateFunc func(t *testing.T, m map[string]interface{})
	}{
		{
			name: "sem sinônimos",
			validateFunc: func(t *testing.T, m map[string]interface{}) {
				analysis := m["settings"].(map[string]interface{})["analysis"].(map[string]interface{})
				assert.NotContains(t, analysis, "filter")
				titulo := m["mappings"].(map[string]interface{})["properties"].(map[string]interface{})["titulo"].(map[string]interface{})
				assert.Equal(t, "pt_folded", titulo["search_analyzer"])
			},
		},
		{
			name:     "com sinônimos",
			synonyms: []string{"roubo, assalto"},
			validateFunc: func(t *testing.T, m map[string]interface{}) {
				analysis := m["settings"].(map[string]interface{})["analysis"].(map[string]interface{})
				graph := analysis["filter"].(map[string]interface{})["pt_synonym_graph"].(map[string]interface{})
				assert.Equal(t, "synonym_graph", graph["type"])
				assert.Equal(t, []interface{}{"roubo, assalto"}, graph["synonyms"])

				props := m["mappings"].(map[string]interface{})["properties"].(map[string]interface{})
				bairro := props["bairro"].(map[string]interface{})
				assert.Equal(t, "pt_synonyms", bairro["search_analyzer"])
				assert.Equal(t, "pt_folded", bairro["analyzer"])
				assert.Contains(t, bairro, "fields")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := buildDenunciasMapping(tt.synonyms)
			require.NoError(t, err)
			var m map[string]interface{}
			require.NoError(t, json.Unmarshal(raw, &m))
			tt.validateFunc(t, m)
		})
	}
}
