package cache

import (
	"sync"

	"delivery-service/internal/model"
)

// DishCache — потокобезопасный in-memory кэш для блюд
// меню читается гораздо чаще, чем меняется, поэтому кэшируются именно блюда
type DishCache struct {
	// sync.Map выбрал для обеспечения потокобезопасности
	// Ключ — string (hex-идентификатор), значение — model.Dish
	storage sync.Map
}

// NewDishCache создаёт новый экземпляр кэша
func NewDishCache() *DishCache {
	return &DishCache{}
}

// Set добавляет или обновляет блюдо в кэше
func (c *DishCache) Set(dish model.Dish) {
	c.storage.Store(dish.ID.Hex(), dish)
}

// Get извлекает блюдо из кэша по hex-идентификатору
// возвращает блюдо и true, если оно найдено, иначе — пустую структуру и false
func (c *DishCache) Get(id string) (model.Dish, bool) {
	value, ok := c.storage.Load(id)
	if !ok {
		return model.Dish{}, false
	}

	// выполняем безопасное приведение типа
	dish, ok := value.(model.Dish)
	return dish, ok
}

// Delete убирает блюдо из кэша
// вызывается при мягком удалении, чтобы кэш не отдавал устаревшую копию
func (c *DishCache) Delete(id string) {
	c.storage.Delete(id)
}

// LoadAll загружает в кэш срез блюд
// используется для первоначального заполнения кэша при старте сервиса
func (c *DishCache) LoadAll(dishes []model.Dish) {
	for _, dish := range dishes {
		c.Set(dish)
	}
}
