package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"delivery-service/internal/mocks"
	"delivery-service/internal/model"
	"delivery-service/internal/repository/cache"
	"delivery-service/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type handlerEnv struct {
	dishRepo  *mocks.DishRepository
	orderRepo *mocks.OrderRepository
	users     *mocks.UserRepository
	handler   *Handler
}

func newHandlerEnv() *handlerEnv {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	env := &handlerEnv{
		dishRepo:  new(mocks.DishRepository),
		orderRepo: new(mocks.OrderRepository),
		users:     new(mocks.UserRepository),
	}

	dishSvc := service.NewDishService(env.dishRepo, env.users, cache.NewDishCache(), nil, log)
	orderSvc := service.NewOrderService(env.orderRepo, env.users, nil, log)
	env.handler = NewHandler(dishSvc, orderSvc, log)
	return env
}

func (e *handlerEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func TestHandler_Health(t *testing.T) {
	env := newHandlerEnv()

	w := env.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_CreateDish(t *testing.T) {
	userID := primitive.NewObjectID()
	dishID := primitive.NewObjectID()

	stored := model.Dish{
		ID:          dishID,
		Name:        "Borscht",
		Description: "Soup",
		Price:       5.50,
		CreatedBy:   userID,
	}

	env := newHandlerEnv()
	env.users.On("Exists", mock.Anything, userID).Return(true, nil).Once()
	env.dishRepo.On("Create", mock.Anything, mock.AnythingOfType("model.Dish")).Return(dishID, nil).Once()
	env.dishRepo.On("GetByID", mock.Anything, dishID).Return(stored, nil).Once()

	body := `{"name":"Borscht","description":"Soup","price":5.50,"created_by":"` + userID.Hex() + `"}`
	w := env.do(t, http.MethodPost, "/dishes", body)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dishID.Hex(), resp["id"])
	assert.Equal(t, "Borscht", resp["name"])
	assert.Equal(t, "Soup", resp["description"])
	assert.Equal(t, 5.50, resp["price"])
	// внутренний флаг deleted наружу не отдаётся
	assert.NotContains(t, resp, "deleted")

	env.dishRepo.AssertExpectations(t)
}

func TestHandler_CreateDishUnknownUser(t *testing.T) {
	userID := primitive.NewObjectID()

	env := newHandlerEnv()
	env.users.On("Exists", mock.Anything, userID).Return(false, nil).Once()

	body := `{"name":"Borscht","description":"Soup","price":5.50,"created_by":"` + userID.Hex() + `"}`
	w := env.do(t, http.MethodPost, "/dishes", body)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "user not found")
	// документ не был сохранён
	env.dishRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandler_CreateDishInvalidBody(t *testing.T) {
	env := newHandlerEnv()

	w := env.do(t, http.MethodPost, "/dishes", `{invalid}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_CreateDishValidation(t *testing.T) {
	env := newHandlerEnv()

	// отрицательная цена отклоняется до любых обращений к хранилищу
	body := `{"name":"Borscht","price":-1,"created_by":"` + primitive.NewObjectID().Hex() + `"}`
	w := env.do(t, http.MethodPost, "/dishes", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.dishRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandler_GetDishInvalidID(t *testing.T) {
	env := newHandlerEnv()

	w := env.do(t, http.MethodGet, "/dishes/not-a-valid-id", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid id")
}

func TestHandler_GetDishNotFound(t *testing.T) {
	dishID := primitive.NewObjectID()

	env := newHandlerEnv()
	env.dishRepo.On("GetByID", mock.Anything, dishID).Return(model.Dish{}, model.ErrDishNotFound).Once()

	w := env.do(t, http.MethodGet, "/dishes/"+dishID.Hex(), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_GetAllDishes(t *testing.T) {
	env := newHandlerEnv()
	env.dishRepo.On("GetAll", mock.Anything).Return([]model.Dish{
		{ID: primitive.NewObjectID(), Name: "Borscht", Price: 5.50, CreatedBy: primitive.NewObjectID()},
		{ID: primitive.NewObjectID(), Name: "Olivier", Price: 3.20, CreatedBy: primitive.NewObjectID()},
	}, nil).Once()

	w := env.do(t, http.MethodGet, "/dishes", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestHandler_DeleteDishNotFound(t *testing.T) {
	dishID := primitive.NewObjectID()

	env := newHandlerEnv()
	env.dishRepo.On("SoftDelete", mock.Anything, dishID).Return(model.ErrDishNotFound).Once()

	w := env.do(t, http.MethodDelete, "/dishes/"+dishID.Hex(), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "dish not found")
}

func TestHandler_DeleteDish(t *testing.T) {
	dishID := primitive.NewObjectID()

	env := newHandlerEnv()
	env.dishRepo.On("SoftDelete", mock.Anything, dishID).Return(nil).Once()

	w := env.do(t, http.MethodDelete, "/dishes/"+dishID.Hex(), "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHandler_UpdateOrderStatus(t *testing.T) {
	orderID := primitive.NewObjectID()
	orderTime := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	updated := model.Order{
		ID:          orderID,
		UserID:      primitive.NewObjectID(),
		TotalPrice:  12.30,
		OrderStatus: "completed",
		OrderTime:   orderTime,
	}

	env := newHandlerEnv()
	env.orderRepo.On("Update", mock.Anything, orderID, bson.M{"order_status": "completed"}).
		Return(updated, nil).Once()

	w := env.do(t, http.MethodPatch, "/orders/"+orderID.Hex(), `{"order_status":"completed"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp model.OrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.OrderStatus)
	assert.True(t, orderTime.Equal(resp.OrderTime))
}

func TestHandler_UpdateDishEmptyName(t *testing.T) {
	dishID := primitive.NewObjectID()

	env := newHandlerEnv()

	// явно переданное пустое имя — 400, запись в хранилище не происходит
	w := env.do(t, http.MethodPatch, "/dishes/"+dishID.Hex(), `{"name":""}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	env.dishRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_DeleteOrder(t *testing.T) {
	orderID := primitive.NewObjectID()

	env := newHandlerEnv()
	env.orderRepo.On("Delete", mock.Anything, orderID).Return(nil).Once()

	w := env.do(t, http.MethodDelete, "/orders/"+orderID.Hex(), "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHandler_DeleteOrderNotFound(t *testing.T) {
	orderID := primitive.NewObjectID()

	env := newHandlerEnv()
	env.orderRepo.On("Delete", mock.Anything, orderID).Return(model.ErrOrderNotFound).Once()

	w := env.do(t, http.MethodDelete, "/orders/"+orderID.Hex(), "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "order not found")
}

func TestHandler_StoreFaultIsGeneric500(t *testing.T) {
	dishID := primitive.NewObjectID()

	env := newHandlerEnv()
	env.dishRepo.On("GetByID", mock.Anything, dishID).Return(model.Dish{}, assert.AnError).Once()

	w := env.do(t, http.MethodGet, "/dishes/"+dishID.Hex(), "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// наружу уходит обезличенное сообщение, не текст внутренней ошибки
	assert.Contains(t, w.Body.String(), "internal server error")
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}
