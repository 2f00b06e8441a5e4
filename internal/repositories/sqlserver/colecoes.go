package sqlserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"portalseguranca/internal/models/entities"
	"portalseguranca/internal/repositories/store"
	"time"

	"gorm.io/gorm"
)

// Store implementa store.Store gravando cada coleção como uma linha de dbo.Colecoes
type Store struct {
	conn *Internal
	now  func() time.Time
}

// NewStore cria o store sobre uma conexão aberta
func NewStore(conn *Internal) *Store {
	return &Store{conn: conn, now: time.Now}
}

// Load lê o JSON da coleção; sem linha, a coleção é vazia
func (s *Store) Load(ctx context.Context, collection store.Collection, dest any) error {
	if err := collection.Validate(); err != nil {
		return err
	}

	var row entities.Colecao
	err := s.conn.db.WithContext(ctx).Where("Nome = ?", string(collection)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && row.Conteudo == "") {
		return json.Unmarshal([]byte("[]"), dest)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", collection, err)
	}

	if err := json.Unmarshal([]byte(row.Conteudo), dest); err != nil {
		return fmt.Errorf("decoding %s: %w", collection, err)
	}
	return nil
}

// Replace grava a coleção inteira; Save faz upsert pela chave primária
func (s *Store) Replace(ctx context.Context, collection store.Collection, items any) error {
	if err := collection.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", collection, err)
	}
	if string(data) == "null" {
		data = []byte("[]")
	}

	row := entities.Colecao{
		Nome:         string(collection),
		Conteudo:     string(data),
		AtualizadoEm: s.now().UTC(),
	}
	if err := s.conn.db.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("saving %s: %w", collection, err)
	}
	return nil
}

// Close fecha a conexão
func (s *Store) Close(context.Context) error {
	return s.conn.Close()
}
