package elsearch

// Construir query de busca de denúncias
func buildSearchQuery(query string, from, size int) map[string]interface{} {
	if query == "" {
		// Sem query: apenas paginação e ordenação
		return map[string]interface{}{
			"from": from,
			"size": size,
			"sort": []map[string]interface{}{
				{"createdAt": map[string]string{"order": "desc", "unmapped_type": "keyword"}},
			},
		}
	}

	return map[string]interface{}{
		"from": from,
		"size": size,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query": query,
				"fields": []string{
					"titulo^3",
					"descricao^2",
					"tipoOcorrencia^2",
					"endereco",
					"bairro",
				},
				"type":      "best_fields",
				"fuzziness": "AUTO",
				"operator":  "or",
			},
		},
		"sort": []map[string]interface{}{
			{"_score": map[string]string{"order": "desc"}},
			{"createdAt": map[string]string{"order": "desc", "unmapped_type": "keyword"}},
		},
	}
}
