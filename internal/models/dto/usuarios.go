package dto

import "time"

// LoginRequest representa a requisição de login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"comite@prefeitura.gov.br"`
	Password string `json:"password" binding:"required" example:"SenhaSegura@123"`
}

// ChangePasswordRequest representa a requisição de mudança de senha
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required" example:"SenhaAtual@123"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=100" example:"NovaSenha@456"`
}

// CreateUsuarioRequest cria um membro da equipe
type CreateUsuarioRequest struct {
	Nome   string `json:"nome" binding:"required,min=3,max=200" example:"Maria Souza"`
	Email  string `json:"email" binding:"required,email,max=255" example:"maria@prefeitura.gov.br"`
	Senha  string `json:"senha" binding:"required,min=8,max=100" example:"SenhaSegura@123"`
	Perfil string `json:"perfil" binding:"required,oneof=ADMIN COMITE" example:"COMITE" enums:"ADMIN,COMITE"`
}

// UsuarioResponse representa um usuário na resposta, sem o hash da senha
type UsuarioResponse struct {
	Id           int    `json:"id" example:"1"`
	Nome         string `json:"nome" example:"Maria Souza"`
	Email        string `json:"email" example:"maria@prefeitura.gov.br"`
	Perfil       string `json:"perfil" example:"COMITE"`
	Ativo        bool   `json:"ativo" example:"true"`
	CreatedAt    string `json:"createdAt,omitempty" example:"2025-10-16T10:30:00.000Z"`
	UltimoAcesso string `json:"ultimoAcesso,omitempty" example:"2025-10-16T14:20:00.000Z"`
}

// LoginResponse representa a resposta de login bem-sucedida
type LoginResponse struct {
	Token     string          `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType string          `json:"token_type" example:"Bearer"`
	ExpiresIn int             `json:"expires_in" example:"3600"`
	ExpiresAt time.Time       `json:"expires_at" example:"2025-10-23T15:30:00Z"`
	User      UsuarioResponse `json:"user"`
}

// UploadResponse descreve um arquivo salvo
type UploadResponse struct {
	Path     string `json:"path" example:"/uploads/3f1c9a.pdf"`
	MimeType string `json:"mimeType" example:"application/pdf"`
	Size     int64  `json:"size" example:"102400"`
}
