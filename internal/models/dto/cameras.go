package dto

// CameraRequest é o corpo de criação e atualização de câmeras
type CameraRequest struct {
	Nome        string   `json:"nome" binding:"required,max=200" example:"Câmera Praça Central"`
	Localizacao string   `json:"localizacao" example:"Praça Central"`
	Latitude    *float64 `json:"latitude,omitempty" example:"-23.5505"`
	Longitude   *float64 `json:"longitude,omitempty" example:"-46.6333"`
	Status      string   `json:"status" binding:"required" example:"online" enums:"online,offline,maintenance,manutencao"`
	Type        string   `json:"type" example:"PTZ"`
	Resolution  string   `json:"resolution" example:"1080p"`
	StreamUrl   string   `json:"streamUrl,omitempty" example:"rtsp://10.0.0.10/stream1"`
}
