package items

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func phoneBSON() bson.D {
	return bson.D{
		{Key: "_id", Value: int64(1)},
		{Key: "item_id", Value: int64(1)},
		{Key: "item_name", Value: "Phone"},
		{Key: "price", Value: int64(100)},
		{Key: "discount", Value: int64(2)},
		{Key: "description", Value: "test"},
		{Key: "date_added", Value: time.Date(2026, time.October, 14, 9, 30, 5, 0, time.UTC)},
	}
}

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert success", func(mt *mtest.T) {
		repository := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		item, err := repository.Insert(context.Background(), samplePhone())

		require.NoError(mt, err)
		require.Equal(mt, samplePhone(), item)
	})

	mt.Run("insert duplicate", func(mt *mtest.T) {
		repository := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := repository.Insert(context.Background(), samplePhone())

		require.ErrorIs(mt, err, ErrorDuplicateID)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repository := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, phoneBSON()))

		item, err := repository.GetByID(context.Background(), 1)

		require.NoError(mt, err)
		require.True(mt, SameSnapshot(samplePhone(), item))
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repository := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := repository.GetByID(context.Background(), 404)

		require.ErrorIs(mt, err, ErrorNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		repository := NewMongoRepository(mt.Coll)
		mouse := bson.D{
			{Key: "_id", Value: int64(2)},
			{Key: "item_id", Value: int64(2)},
			{Key: "item_name", Value: "Mouse"},
			{Key: "price", Value: int64(5)},
			{Key: "discount", Value: int64(0)},
			{Key: "description", Value: ""},
			{Key: "date_added", Value: time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, phoneBSON(), mouse))

		items, err := repository.List(context.Background())

		require.NoError(mt, err)
		require.Len(mt, items, 2)
		require.Equal(mt, "Phone", items[0].ItemName)
		require.Equal(mt, "Mouse", items[1].ItemName)
	})

	mt.Run("list empty", func(mt *mtest.T) {
		repository := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		items, err := repository.List(context.Background())

		require.NoError(mt, err)
		require.NotNil(mt, items)
		require.Empty(mt, items)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repository := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		require.NoError(mt, repository.Delete(context.Background(), 1))
	})

	mt.Run("delete command error", func(mt *mtest.T) {
		repository := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
			Name:    "BadValue",
		}))

		require.Error(mt, repository.Delete(context.Background(), 1))
	})
}
