package elsearch

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// SegurancaKeywords são os termos usados para filtrar o thesaurus para o domínio de denúncias
var SegurancaKeywords = []string{
	"roubo", "furto", "assalto", "agressão", "violência", "briga",
	"vandalismo", "pichação", "depredação", "dano",
	"droga", "tráfico", "arma", "tiro", "disparo",
	"barulho", "ruído", "perturbação", "som",
	"iluminação", "poste", "lâmpada", "escuro",
	"buraco", "calçada", "via", "rua", "trânsito", "acidente",
	"lixo", "entulho", "abandono", "terreno",
	"suspeito", "invasão", "ameaça", "perigo", "emergência",
}

var nonLetters = regexp.MustCompile(`[^\p{L}\s]`)

// marcadores do thesaurus que aparecem grudados nos sinônimos
var thesaurusMarkers = []string{"sinônimo", "antônimo", "termo", "relacionado"}

// Thesaurus converte o th_pt_BR.dat (OpenOffice) para a lista de sinônimos do Elasticsearch
type Thesaurus struct {
	MinSynonyms int // entradas com menos sinônimos são descartadas
	MaxWords    int // limite de palavras por linha
}

// NewThesaurus retorna o conversor com os limites padrão
func NewThesaurus() *Thesaurus {
	return &Thesaurus{MinSynonyms: 2, MaxWords: 15}
}

// Convert lê o formato .dat ("palavra|n" seguido de "(sinônimo|tipo)") e escreve uma linha
// "palavra, sinônimo, ..." por entrada. Retorna o número de linhas escritas.
func (th *Thesaurus) Convert(r io.Reader, w io.Writer) (int, error) {
	scanner := bufio.NewScanner(r)
	writer := bufio.NewWriter(w)

	var current string
	var synonyms []string
	written := 0

	emit := func() error {
		if current == "" || len(synonyms) < th.MinSynonyms {
			return nil
		}
		line, ok := th.synonymLine(current, synonyms)
		if !ok {
			return nil
		}
		if _, err := writer.WriteString(line + "\n"); err != nil {
			return err
		}
		written++
		return nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "ISO") || strings.HasPrefix(line, "UTF") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "("):
			parts := strings.Split(strings.Trim(line, "()"), "|")
			syn := cleanMarkers(strings.ToLower(strings.TrimSpace(parts[0])))
			if syn != "" && syn != current && len(syn) > 2 {
				synonyms = append(synonyms, syn)
			}
		case strings.Contains(line, "|"):
			if err := emit(); err != nil {
				return written, err
			}
			current = strings.ToLower(strings.TrimSpace(strings.Split(line, "|")[0]))
			synonyms = synonyms[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return written, err
	}
	if err := emit(); err != nil {
		return written, err
	}
	return written, writer.Flush()
}

func (th *Thesaurus) synonymLine(word string, synonyms []string) (string, bool) {
	unique := dedupe(synonyms)
	if th.MaxWords > 0 && len(unique) > th.MaxWords {
		unique = unique[:th.MaxWords]
	}

	cleaned := make([]string, 0, len(unique)+1)
	for _, w := range append([]string{word}, unique...) {
		w = strings.TrimSpace(nonLetters.ReplaceAllString(cleanMarkers(w), ""))
		if len(w) > 2 {
			cleaned = append(cleaned, w)
		}
	}
	if len(cleaned) < 2 {
		return "", false
	}
	return strings.Join(cleaned, ", "), true
}

// FilterByKeywords copia apenas as linhas que contêm alguma das palavras-chave
func FilterByKeywords(r io.Reader, w io.Writer, keywords []string) (int, error) {
	wanted := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		wanted[strings.ToLower(kw)] = true
	}

	scanner := bufio.NewScanner(r)
	writer := bufio.NewWriter(w)
	kept := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, word := range strings.Split(line, ",") {
			if wanted[strings.ToLower(strings.TrimSpace(word))] {
				if _, err := writer.WriteString(line + "\n"); err != nil {
					return kept, err
				}
				kept++
				break
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return kept, err
	}
	return kept, writer.Flush()
}

// ReadSynonyms lê as linhas de sinônimos, ignorando vazias e comentários
func ReadSynonyms(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, scanner.Err()
}

// ReadSynonymsFile abre path e chama ReadSynonyms
func ReadSynonymsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening synonyms file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return ReadSynonyms(f)
}

func cleanMarkers(s string) string {
	for _, m := range thesaurusMarkers {
		s = strings.ReplaceAll(s, m, "")
	}
	return strings.TrimSpace(s)
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			out = append(out, it)
		}
	}
	return out
}

// buildDenunciasMapping monta settings e mappings do índice.
// Com sinônimos, os campos de texto ganham um search_analyzer com synonym_graph.
func buildDenunciasMapping(synonyms []string) ([]byte, error) {
	analyzers := map[string]interface{}{
		"pt_folded": map[string]interface{}{
			"type":      "custom",
			"tokenizer": "standard",
			"filter":    []string{"lowercase", "asciifolding"},
		},
	}
	analysis := map[string]interface{}{"analyzer": analyzers}

	searchAnalyzer := "pt_folded"
	if len(synonyms) > 0 {
		searchAnalyzer = "pt_synonyms"
		analyzers["pt_synonyms"] = map[string]interface{}{
			"type":      "custom",
			"tokenizer": "standard",
			"filter":    []string{"lowercase", "asciifolding", "pt_synonym_graph"},
		}
		analysis["filter"] = map[string]interface{}{
			"pt_synonym_graph": map[string]interface{}{
				"type":     "synonym_graph",
				"synonyms": synonyms,
				"lenient":  true,
			},
		}
	}

	text := func(withRaw bool) map[string]interface{} {
		field := map[string]interface{}{
			"type":            "text",
			"analyzer":        "pt_folded",
			"search_analyzer": searchAnalyzer,
		}
		if withRaw {
			field["fields"] = map[string]interface{}{"raw": map[string]string{"type": "keyword"}}
		}
		return field
	}

	body := map[string]interface{}{
		"settings": map[string]interface{}{"analysis": analysis},
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"id":             map[string]string{"type": "integer"},
				"titulo":         text(false),
				"descricao":      text(false),
				"tipoOcorrencia": text(true),
				"endereco":       text(false),
				"bairro":         text(true),
				"prioridade":     map[string]string{"type": "keyword"},
				"status":         map[string]string{"type": "keyword"},
				"createdAt":      map[string]string{"type": "keyword"},
			},
		},
	}
	return json.Marshal(body)
}
