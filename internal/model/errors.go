package model

import "errors"

// Сентинельные ошибки доменного слоя
// обработчики транслируют их в HTTP-статусы через errors.Is
var (
	// ErrInvalidID — переданный идентификатор не является валидным hex-идентификатором ObjectID
	ErrInvalidID = errors.New("invalid id")

	// ErrDishNotFound — блюдо с таким идентификатором отсутствует в коллекции
	ErrDishNotFound = errors.New("dish not found")

	// ErrOrderNotFound — заказ с таким идентификатором отсутствует в коллекции
	ErrOrderNotFound = errors.New("order not found")

	// ErrUserNotFound — ссылка на несуществующего пользователя (created_by / user_id)
	ErrUserNotFound = errors.New("user not found")

	// ErrShapeMismatch — сохранённый документ не содержит обязательных полей ответа
	// это внутренняя ошибка рассинхронизации схемы, а не ошибка клиента
	ErrShapeMismatch = errors.New("stored document does not match response shape")
)
