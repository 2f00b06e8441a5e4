package entities

import (
	"bytes"
	"encoding/json"
)

var jsonNull = []byte("null")

// Campos de texto lidos de forma tolerante nas coleções gravadas
var (
	denunciaTextFields = []string{
		"titulo", "descricao", "tipoOcorrencia", "prioridade", "status",
		"dataOcorrencia", "horaOcorrencia", "endereco", "bairro",
		"nomeDenunciante", "contato", "observacoes", "createdAt", "updatedAt",
	}
	cameraTextFields = []string{
		"nome", "localizacao", "status", "type", "resolution", "streamUrl", "createdAt", "updatedAt",
	}
)

// looseText reescreve os campos de texto do objeto que vieram com outro tipo JSON.
// Números viram o próprio literal ("1741000000000"); booleanos, objetos e arrays são descartados.
// Sem campos a corrigir o documento é devolvido como está.
func looseText(data []byte, fields []string) ([]byte, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	changed := false
	for _, f := range fields {
		v, ok := raw[f]
		if !ok {
			continue
		}
		v = bytes.TrimSpace(v)
		if len(v) == 0 || v[0] == '"' || bytes.Equal(v, jsonNull) {
			continue
		}

		changed = true
		if v[0] == '-' || (v[0] >= '0' && v[0] <= '9') {
			s, err := json.Marshal(string(v))
			if err != nil {
				return nil, err
			}
			raw[f] = s
		} else {
			delete(raw, f)
		}
	}

	if !changed {
		return data, nil
	}
	return json.Marshal(raw)
}

// UnmarshalJSON aceita campos de texto com tipos errados; um valor ruim só deixa de ser contado
func (d *Denuncia) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return nil
	}
	data, err := looseText(data, denunciaTextFields)
	if err != nil {
		return err
	}
	type plain Denuncia
	return json.Unmarshal(data, (*plain)(d))
}

// UnmarshalJSON segue as mesmas regras de Denuncia
func (c *Camera) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return nil
	}
	data, err := looseText(data, cameraTextFields)
	if err != nil {
		return err
	}
	type plain Camera
	return json.Unmarshal(data, (*plain)(c))
}
