package wishlists

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func wishlistBSON(id primitive.ObjectID, name, customerID string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "customer_id", Value: customerID},
		{Key: "isPublic", Value: false},
		{Key: "items", Value: bson.A{}},
	}
}

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert assigns an object id", func(mt *mtest.T) {
		repository := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		created, err := repository.Insert(context.Background(), Wishlist{Name: "gifts", CustomerID: "c1"})

		require.NoError(mt, err)
		require.True(mt, primitive.IsValidObjectID(created.ID))
		require.NotNil(mt, created.Items)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repository := NewMongoRepository(mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, wishlistBSON(id, "gifts", "c1")))

		wishlist, err := repository.GetByID(context.Background(), id.Hex())

		require.NoError(mt, err)
		require.Equal(mt, id.Hex(), wishlist.ID)
		require.Equal(mt, "gifts", wishlist.Name)
		require.Equal(mt, "c1", wishlist.CustomerID)
	})

	mt.Run("get by malformed id", func(mt *mtest.T) {
		repository := NewMongoRepository(mt.Coll)

		_, err := repository.GetByID(context.Background(), "xyz")

		require.ErrorIs(mt, err, ErrorWishlistNotFound)
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repository := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := repository.GetByID(context.Background(), primitive.NewObjectID().Hex())

		require.ErrorIs(mt, err, ErrorWishlistNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		repository := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			wishlistBSON(primitive.NewObjectID(), "gifts", "c1"),
			wishlistBSON(primitive.NewObjectID(), "books", "c1"),
		))

		wishlists, err := repository.List(context.Background(), ListFilter{CustomerID: "c1"})

		require.NoError(mt, err)
		require.Len(mt, wishlists, 2)
		require.Equal(mt, "books", wishlists[1].Name)
	})

	mt.Run("replace", func(mt *mtest.T) {
		repository := NewMongoRepository(mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		updated, err := repository.Replace(context.Background(), Wishlist{ID: id.Hex(), Name: "foo 3", CustomerID: "c1"})

		require.NoError(mt, err)
		require.Equal(mt, id.Hex(), updated.ID)
		require.Equal(mt, "foo 3", updated.Name)
	})

	mt.Run("replace missing", func(mt *mtest.T) {
		repository := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		_, err := repository.Replace(context.Background(), Wishlist{ID: primitive.NewObjectID().Hex()})

		require.ErrorIs(mt, err, ErrorWishlistNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repository := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		require.NoError(mt, repository.Delete(context.Background(), primitive.NewObjectID().Hex()))
	})

	mt.Run("delete malformed id is a no-op", func(mt *mtest.T) {
		repository := NewMongoRepository(mt.Coll)

		require.NoError(mt, repository.Delete(context.Background(), "nope"))
	})
}
