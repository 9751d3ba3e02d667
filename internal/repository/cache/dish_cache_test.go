package cache

import (
	"testing"

	"delivery-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDishCache_SetGet(t *testing.T) {
	c := NewDishCache()
	dish := model.Dish{ID: primitive.NewObjectID(), Name: "Borscht", Price: 5.50}

	_, found := c.Get(dish.ID.Hex())
	assert.False(t, found)

	c.Set(dish)

	got, found := c.Get(dish.ID.Hex())
	require.True(t, found)
	assert.Equal(t, dish, got)

	// повторный Set перезаписывает значение
	dish.Price = 6
	c.Set(dish)
	got, _ = c.Get(dish.ID.Hex())
	assert.Equal(t, 6.0, got.Price)
}

func TestDishCache_Delete(t *testing.T) {
	c := NewDishCache()
	dish := model.Dish{ID: primitive.NewObjectID(), Name: "Borscht"}

	c.Set(dish)
	c.Delete(dish.ID.Hex())

	_, found := c.Get(dish.ID.Hex())
	assert.False(t, found)

	// удаление отсутствующего ключа не паникует
	c.Delete("missing")
}

func TestDishCache_LoadAll(t *testing.T) {
	c := NewDishCache()
	dishes := []model.Dish{
		{ID: primitive.NewObjectID(), Name: "Borscht"},
		{ID: primitive.NewObjectID(), Name: "Olivier"},
	}

	c.LoadAll(dishes)

	for _, dish := range dishes {
		got, found := c.Get(dish.ID.Hex())
		require.True(t, found)
		assert.Equal(t, dish.Name, got.Name)
	}
}
