package entities

// Usuario representa um membro da equipe (comitê ou administrador)
type Usuario struct {
	Id           int    `json:"id"`
	Nome         string `json:"nome"`
	Email        string `json:"email"`
	SenhaHash    string `json:"senhaHash"`
	Perfil       string `json:"perfil"`
	Ativo        bool   `json:"ativo"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
	UltimoAcesso string `json:"ultimoAcesso,omitempty"`
}

// GetId implementa store.Identifiable
func (u Usuario) GetId() int { return u.Id }
