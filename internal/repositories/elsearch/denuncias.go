package elsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"portalseguranca/internal/models/dto"
	"portalseguranca/internal/models/entities"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9/esapi"
)

// SearchResult é uma página de denúncias encontradas
type SearchResult struct {
	Denuncias []entities.Denuncia
	Total     int64
}

// IndexDenuncia grava (ou sobrescreve) a denúncia no índice usando o id como chave
func (es *Client) IndexDenuncia(ctx context.Context, d entities.Denuncia) error {
	body, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("erro ao serializar denúncia: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      es.config.IndexName,
		DocumentID: strconv.Itoa(d.Id),
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, es.ES)
	if err != nil {
		return fmt.Errorf("erro ao indexar denúncia %d: %w", d.Id, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("erro ao indexar denúncia %d: %s - %s", d.Id, res.Status(), string(msg))
	}
	return nil
}

// DeleteDenuncia remove a denúncia do índice; ausência não é erro
func (es *Client) DeleteDenuncia(ctx context.Context, id int) error {
	req := esapi.DeleteRequest{
		Index:      es.config.IndexName,
		DocumentID: strconv.Itoa(id),
	}
	res, err := req.Do(ctx, es.ES)
	if err != nil {
		return fmt.Errorf("erro ao remover denúncia %d: %w", id, err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("erro ao remover denúncia %d: %s", id, res.Status())
	}
	return nil
}

// SearchDenuncias realiza uma busca paginada de denúncias
func (es *Client) SearchDenuncias(ctx context.Context, params dto.SearchParams) (*SearchResult, error) {
	params.Normalize()

	queryJSON, err := json.Marshal(buildSearchQuery(params.Query, params.Offset(), params.PageSize))
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{es.config.IndexName},
		Body:  bytes.NewReader(queryJSON),
	}
	res, err := req.Do(ctx, es.ES)
	if err != nil {
		return nil, fmt.Errorf("erro na execução da busca: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("erro na busca: %s - %s", res.Status(), string(body))
	}

	return parseSearchResponse(res.Body)
}

func parseSearchResponse(r io.Reader) (*SearchResult, error) {
	var esResponse dto.ESResponse
	if err := json.NewDecoder(r).Decode(&esResponse); err != nil {
		return nil, fmt.Errorf("erro ao deserializar resposta: %w", err)
	}

	out := &SearchResult{
		Denuncias: make([]entities.Denuncia, 0, len(esResponse.Hits.Hits)),
		Total:     esResponse.Hits.Total.Value,
	}
	for _, hit := range esResponse.Hits.Hits {
		var d entities.Denuncia
		if err := json.Unmarshal(hit.Source, &d); err != nil {
			return nil, fmt.Errorf("erro ao deserializar denúncia %s: %w", hit.ID, err)
		}
		out.Denuncias = append(out.Denuncias, d)
	}
	return out, nil
}
