package entities

// Status aceitos para uma câmera
const (
	CameraOnline      = "online"
	CameraOffline     = "offline"
	CameraMaintenance = "maintenance"
	CameraManutencao  = "manutencao"
)

// Valores padrão dos histogramas de câmeras
const (
	TipoCameraPadrao      = "Desconhecido"
	ResolucaoCameraPadrao = "Desconhecida"
)

// Camera representa uma câmera de monitoramento da cidade
type Camera struct {
	Id          int      `json:"id"`
	Nome        string   `json:"nome,omitempty"`
	Localizacao string   `json:"localizacao,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Status      string   `json:"status,omitempty"`
	Type        string   `json:"type,omitempty"`
	Resolution  string   `json:"resolution,omitempty"`
	StreamUrl   string   `json:"streamUrl,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// GetId implementa store.Identifiable
func (c Camera) GetId() int { return c.Id }

// Tipo retorna o tipo da câmera ou "Desconhecido"
func (c Camera) Tipo() string {
	if c.Type == "" {
		return TipoCameraPadrao
	}
	return c.Type
}

// Resolucao retorna a resolução da câmera ou "Desconhecida"
func (c Camera) Resolucao() string {
	if c.Resolution == "" {
		return ResolucaoCameraPadrao
	}
	return c.Resolution
}

// ValidCameraStatus informa se o status é um dos aceitos
func ValidCameraStatus(status string) bool {
	switch status {
	case CameraOnline, CameraOffline, CameraMaintenance, CameraManutencao:
		return true
	}
	return false
}
