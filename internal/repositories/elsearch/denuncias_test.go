package elsearch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		from, size   int
		validateFunc func(t *testing.T, q map[string]interface{})
	}{
		{
			name: "sem termo ordena por data",
			size: 20,
			validateFunc: func(t *testing.T, q map[string]interface{}) {
				assert.NotContains(t, q, "query")
				assert.Equal(t, 20, q["size"])
			},
		},
		{
			name:  "com termo usa multi_match",
			query: "poste",
			from:  40,
			size:  20,
			validateFunc: func(t *testing.T, q map[string]interface{}) {
				assert.Equal(t, 40, q["from"])
				mm := q["query"].(map[string]interface{})["multi_match"].(map[string]interface{})
				assert.Equal(t, "poste", mm["query"])
				assert.Contains(t, mm["fields"], "titulo^3")
				assert.Contains(t, mm["fields"], "bairro")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateFunc(t, buildSearchQuery(tt.query, tt.from, tt.size))
		})
	}
}

func TestParseSearchResponse(t *testing.T) {
	body := `{
	  "took": 3,
	  "hits": {
	    "total": {"value": 42, "relation": "eq"},
	    "hits": [
	      {"_id": "7", "_score": 2.1, "_source": {"id": 7, "titulo": "Poste apagado", "urgente": "true"}},
	      {"_id": "9", "_score": 1.3, "_source": {"id": 9, "titulo": "Buraco na via"}}
	    ]
	  }
	}`

	res, err := parseSearchResponse(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.Total)
	require.Len(t, res.Denuncias, 2)
	assert.Equal(t, 7, res.Denuncias[0].Id)
	assert.True(t, bool(res.Denuncias[0].Urgente))
	assert.Equal(t, "Buraco na via", res.Denuncias[1].Titulo)
}

func TestParseSearchResponse_Malformed(t *testing.T) {
	_, err := parseSearchResponse(strings.NewReader(`{"hits": {"hits": [{"_id": "1", "_source": {"id": "x"}}]}}`))
	assert.Error(t, err)

	_, err = parseSearchResponse(strings.NewReader(`not json`))
	assert.Error(t, err)
}
