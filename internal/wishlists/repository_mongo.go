package wishlists

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRepository guarda wishlists en una colección de Mongo.
// El _id es un ObjectID; hacia afuera viaja como hex.
type MongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository crea un repositorio sobre la colección dada.
func NewMongoRepository(collection *mongo.Collection) *MongoRepository {
	return &MongoRepository{collection: collection}
}

type wishlistDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Wishlist `bson:",inline"`
}

func (document wishlistDocument) toWishlist() Wishlist {
	wishlist := document.Wishlist
	wishlist.ID = document.ID.Hex()
	return wishlist
}

// Insert genera el ObjectID y persiste la wishlist.
func (repository *MongoRepository) Insert(ctx context.Context, wishlist Wishlist) (Wishlist, error) {
	document := wishlistDocument{ID: primitive.NewObjectID(), Wishlist: wishlist.normalized()}
	if _, err := repository.collection.InsertOne(ctx, document); err != nil {
		return Wishlist{}, err
	}
	return document.toWishlist(), nil
}

// GetByID busca por _id. Un hex inválido es "no existe".
func (repository *MongoRepository) GetByID(ctx context.Context, id string) (Wishlist, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Wishlist{}, ErrorWishlistNotFound
	}

	var document wishlistDocument
	err = repository.collection.FindOne(ctx, bson.D{{Key: "_id", Value: objectID}}).Decode(&document)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Wishlist{}, ErrorWishlistNotFound
		}
		return Wishlist{}, err
	}
	return document.toWishlist(), nil
}

// List aplica a lo sumo un filtro de igualdad.
func (repository *MongoRepository) List(ctx context.Context, filter ListFilter) ([]Wishlist, error) {
	query := bson.D{}
	switch {
	case filter.CustomerID != "":
		query = bson.D{{Key: "customer_id", Value: filter.CustomerID}}
	case filter.Name != "":
		query = bson.D{{Key: "name", Value: filter.Name}}
	}

	cursor, err := repository.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}

	var documents []wishlistDocument
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, err
	}

	wishlists := make([]Wishlist, 0, len(documents))
	for _, document := range documents {
		wishlists = append(wishlists, document.toWishlist())
	}
	return wishlists, nil
}

// Replace pisa el documento completo. Sin match devuelve ErrorWishlistNotFound.
func (repository *MongoRepository) Replace(ctx context.Context, wishlist Wishlist) (Wishlist, error) {
	objectID, err := primitive.ObjectIDFromHex(wishlist.ID)
	if err != nil {
		return Wishlist{}, ErrorWishlistNotFound
	}

	document := wishlistDocument{ID: objectID, Wishlist: wishlist.normalized()}
	result, err := repository.collection.ReplaceOne(ctx, bson.D{{Key: "_id", Value: objectID}}, document)
	if err != nil {
		return Wishlist{}, err
	}
	if result.MatchedCount == 0 {
		return Wishlist{}, ErrorWishlistNotFound
	}
	return document.toWishlist(), nil
}

// Delete borra por _id; si no existe (o el id es inválido) no pasa nada.
func (repository *MongoRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	_, err = repository.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: objectID}})
	return err
}
