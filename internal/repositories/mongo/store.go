package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"portalseguranca/internal/repositories/store"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const colecoesCollection = "colecoes"

// documento guardado por coleção: {_id: "denuncias", itens: [...], atualizadoEm}
type colecaoDoc struct {
	ID           string        `bson:"_id"`
	Itens        bson.RawValue `bson:"itens"`
	AtualizadoEm time.Time     `bson:"atualizadoEm"`
}

// Store implementa store.Store com um documento por coleção
type Store struct {
	conn *MongoInternal
	coll *mongo.Collection
	now  func() time.Time
}

// NewStore usa a coleção "colecoes" do banco configurado
func NewStore(conn *MongoInternal) *Store {
	return &Store{
		conn: conn,
		coll: conn.db.Collection(colecoesCollection),
		now:  time.Now,
	}
}

// Load busca o documento da coleção e decodifica os itens em dest
func (s *Store) Load(ctx context.Context, collection store.Collection, dest any) error {
	if err := collection.Validate(); err != nil {
		return err
	}

	var doc colecaoDoc
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: string(collection)}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return json.Unmarshal([]byte("[]"), dest)
	}
	if err != nil {
		return fmt.Errorf("finding %s: %w", collection, err)
	}

	data, err := itensToJSON(doc.Itens)
	if err != nil {
		return fmt.Errorf("converting %s: %w", collection, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decoding %s: %w", collection, err)
	}
	return nil
}

// Replace grava a coleção inteira com um upsert
func (s *Store) Replace(ctx context.Context, collection store.Collection, items any) error {
	if err := collection.Validate(); err != nil {
		return err
	}

	itens, err := jsonToItens(items)
	if err != nil {
		return fmt.Errorf("converting %s: %w", collection, err)
	}

	doc := bson.D{
		{Key: "_id", Value: string(collection)},
		{Key: "itens", Value: itens},
		{Key: "atualizadoEm", Value: s.now().UTC()},
	}
	_, err = s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: string(collection)}}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replacing %s: %w", collection, err)
	}
	return nil
}

// Close desconecta o cliente
func (s *Store) Close(ctx context.Context) error {
	return s.conn.Disconnect(ctx)
}

// jsonToItens passa pelo JSON das entidades para que os nomes dos campos sejam os mesmos
// do arquivo JSON e da API.
func jsonToItens(items any) (bson.A, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	if string(data) == "null" {
		return bson.A{}, nil
	}

	var wrapper struct {
		Itens bson.A `bson:"itens"`
	}
	payload := append(append([]byte(`{"itens":`), data...), '}')
	if err := bson.UnmarshalExtJSON(payload, false, &wrapper); err != nil {
		return nil, err
	}
	if wrapper.Itens == nil {
		wrapper.Itens = bson.A{}
	}
	return wrapper.Itens, nil
}

func itensToJSON(itens bson.RawValue) ([]byte, error) {
	if itens.Type == 0 {
		return []byte("[]"), nil
	}

	ext, err := bson.MarshalExtJSON(bson.D{{Key: "itens", Value: itens}}, false, false)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Itens json.RawMessage `json:"itens"`
	}
	if err := json.Unmarshal(ext, &wrapper); err != nil {
		return nil, err
	}
	if len(wrapper.Itens) == 0 || string(wrapper.Itens) == "null" {
		return []byte("[]"), nil
	}
	return wrapper.Itens, nil
}
