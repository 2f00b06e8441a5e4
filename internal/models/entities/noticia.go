package entities

// Noticia representa um boletim publicado no portal
type Noticia struct {
	Id        int    `json:"id"`
	Titulo    string `json:"titulo"`
	Resumo    string `json:"resumo,omitempty"`
	Conteudo  string `json:"conteudo"`
	Categoria string `json:"categoria,omitempty"`
	Imagem    string `json:"imagem,omitempty"`
	Autor     string `json:"autor,omitempty"`
	Publicada bool   `json:"publicada"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// GetId implementa store.Identifiable
func (n Noticia) GetId() int { return n.Id }
