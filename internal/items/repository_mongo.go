package items

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRepository guarda items en una colección de Mongo.
// item_id se usa como _id, así el índice único propio de Mongo detecta duplicados.
type MongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository crea un repositorio sobre la colección dada.
func NewMongoRepository(collection *mongo.Collection) *MongoRepository {
	return &MongoRepository{collection: collection}
}

type itemDocument struct {
	ID   int64 `bson:"_id"`
	Item `bson:",inline"`
}

// Insert persiste el item. Devuelve ErrorDuplicateID si el item_id ya existe.
func (repository *MongoRepository) Insert(ctx context.Context, item Item) (Item, error) {
	_, err := repository.collection.InsertOne(ctx, itemDocument{ID: item.ItemID, Item: item})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Item{}, ErrorDuplicateID
		}
		return Item{}, err
	}
	return item, nil
}

// GetByID busca por _id.
func (repository *MongoRepository) GetByID(ctx context.Context, id int64) (Item, error) {
	var document itemDocument
	err := repository.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&document)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Item{}, ErrorNotFound
		}
		return Item{}, err
	}
	return document.Item, nil
}

// List devuelve todos los items en el orden natural de la colección.
func (repository *MongoRepository) List(ctx context.Context) ([]Item, error) {
	cursor, err := repository.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	var documents []itemDocument
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(documents))
	for _, document := range documents {
		items = append(items, document.Item)
	}
	return items, nil
}

// Delete borra por _id; si no existe no pasa nada.
func (repository *MongoRepository) Delete(ctx context.Context, id int64) error {
	_, err := repository.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}
