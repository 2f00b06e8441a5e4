package dto

// NoticiaRequest é o corpo de criação e atualização de notícias.
// No multipart o mesmo JSON vem no campo "dados" e a imagem em "imagem".
type NoticiaRequest struct {
	Titulo    string `json:"titulo" binding:"required,max=200" example:"Novas câmeras no centro"`
	Resumo    string `json:"resumo" binding:"max=500" example:"Prefeitura instala 20 novas câmeras"`
	Conteudo  string `json:"conteudo" binding:"required" example:"Texto completo da notícia"`
	Categoria string `json:"categoria" example:"Monitoramento"`
	Autor     string `json:"autor" example:"Comunicação"`
	Publicada *bool  `json:"publicada,omitempty" example:"true"`
}
