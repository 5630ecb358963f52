package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"employee-service/internal/core"
	"employee-service/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*core.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*core.Employee), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*core.Employee, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*core.Employee), args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context) ([]*core.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*core.Employee), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, employee *core.Employee) (*core.Employee, error) {
	args := m.Called(ctx, employee)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	return employee, nil
}

func (m *MockRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishEmployee(ctx context.Context, employee *core.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishDeletion(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	return nil
}

func setupTestHandler() (*Handler, *MockRepository, *MockEventPublisher) {
	repo := new(MockRepository)
	publisher := new(MockEventPublisher)
	logger := log.NewStdLogger(io.Discard)
	svc := service.NewEmployeeService(repo, publisher, logger)
	return NewHandler(svc, logger), repo, publisher
}

func withID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeErrorInfo(t *testing.T, rec *httptest.ResponseRecorder) ErrorInfo {
	t.Helper()
	var info ErrorInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	return info
}

func TestHandler_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		h, repo, publisher := setupTestHandler()

		repo.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*core.Employee")).Return(nil, nil)
		publisher.On("PublishEmployee", mock.Anything, mock.AnythingOfType("*core.Employee")).Return(nil)

		body := `{"email":"a@x.com","fullName":"A","birthday":"1990-01-01","hobbies":["reading"]}`
		req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var response core.EmployeeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.NotEqual(t, uuid.Nil, response.ID)
		assert.Equal(t, "a@x.com", response.Email)
		assert.Equal(t, "A", response.FullName)
		require.NotNil(t, response.Birthday)
		assert.Equal(t, "1990-01-01", response.Birthday.String())
		assert.Equal(t, []string{"reading"}, response.Hobbies)
		publisher.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		h, repo, publisher := setupTestHandler()

		repo.On("FindByEmail", mock.Anything, "a@x.com").Return(&core.Employee{ID: uuid.New(), Email: "a@x.com"}, nil)

		body := `{"email":"a@x.com","fullName":"B","hobbies":["chess"]}`
		req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		info := decodeErrorInfo(t, rec)
		assert.Equal(t, "ALREADY_EXISTS", info.ErrorCode)
		assert.Equal(t, "employee with email a@x.com already exists", info.ErrorMessage)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		publisher.AssertNotCalled(t, "PublishEmployee", mock.Anything, mock.Anything)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		h, repo, _ := setupTestHandler()

		req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBufferString("invalid json"))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_REQUEST", decodeErrorInfo(t, rec).ErrorCode)
		repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("malformed birthday", func(t *testing.T) {
		h, _, _ := setupTestHandler()

		body := `{"email":"a@x.com","fullName":"A","birthday":"01/01/1990","hobbies":["x"]}`
		req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_REQUEST", decodeErrorInfo(t, rec).ErrorCode)
	})

	t.Run("validation errors never reach the service", func(t *testing.T) {
		h, repo, _ := setupTestHandler()

		body := `{"email":"not-an-email","fullName":"  ","hobbies":[]}`
		req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var fieldErrs []core.FieldError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fieldErrs))
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field)
			assert.NotEmpty(t, fe.Error)
		}
		assert.ElementsMatch(t, []string{"email", "fullName", "hobbies"}, fields)
		repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})
}

func TestHandler_List(t *testing.T) {
	t.Run("empty store returns empty array", func(t *testing.T) {
		h, repo, _ := setupTestHandler()
		repo.On("FindAll", mock.Anything).Return(nil, nil)

		rec := httptest.NewRecorder()
		h.List(rec, httptest.NewRequest(http.MethodGet, "/employees", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("returns stored employees", func(t *testing.T) {
		h, repo, _ := setupTestHandler()
		employees := []*core.Employee{
			{ID: uuid.New(), Email: "a@x.com", FullName: "A", Hobbies: []string{"x"}},
			{ID: uuid.New(), Email: "b@x.com", FullName: "B", Hobbies: []string{"y"}},
		}
		repo.On("FindAll", mock.Anything).Return(employees, nil)

		rec := httptest.NewRecorder()
		h.List(rec, httptest.NewRequest(http.MethodGet, "/employees", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var response []core.Employee
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		require.Len(t, response, 2)
		assert.Equal(t, employees[0].ID, response[0].ID)
		assert.Equal(t, employees[1].ID, response[1].ID)
	})

	t.Run("store failure is an internal error", func(t *testing.T) {
		h, repo, _ := setupTestHandler()
		repo.On("FindAll", mock.Anything).Return(nil, errors.New("connection refused"))

		rec := httptest.NewRecorder()
		h.List(rec, httptest.NewRequest(http.MethodGet, "/employees", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		info := decodeErrorInfo(t, rec)
		assert.Equal(t, "INTERNAL", info.ErrorCode)
		assert.NotContains(t, info.ErrorMessage, "connection refused")
	})
}

func TestHandler_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		h, repo, _ := setupTestHandler()
		id := uuid.New()
		birthday := core.NewDate(1985, time.March, 4)
		repo.On("FindByID", mock.Anything, id).Return(&core.Employee{
			ID: id, Email: "a@x.com", FullName: "A", Birthday: &birthday, Hobbies: []string{"x"},
		}, nil)

		rec := httptest.NewRecorder()
		h.Get(rec, withID(httptest.NewRequest(http.MethodGet, "/employees/"+id.String(), nil), id.String()))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t,
			`{"id":"`+id.String()+`","email":"a@x.com","fullName":"A","birthday":"1985-03-04","hobbies":["x"]}`,
			rec.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		h, repo, _ := setupTestHandler()
		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, nil)

		rec := httptest.NewRecorder()
		h.Get(rec, withID(httptest.NewRequest(http.MethodGet, "/employees/"+id.String(), nil), id.String()))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		info := decodeErrorInfo(t, rec)
		assert.Equal(t, "NOT_FOUND", info.ErrorCode)
		assert.Contains(t, info.ErrorMessage, id.String())
	})

	t.Run("invalid UUID", func(t *testing.T) {
		h, repo, _ := setupTestHandler()

		rec := httptest.NewRecorder()
		h.Get(rec, withID(httptest.NewRequest(http.MethodGet, "/employees/invalid-uuid", nil), "invalid-uuid"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_REQUEST", decodeErrorInfo(t, rec).ErrorCode)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestHandler_Update(t *testing.T) {
	t.Run("email-only update clears other fields (confirm with owner)", func(t *testing.T) {
		h, repo, publisher := setupTestHandler()
		id := uuid.New()
		birthday := core.NewDate(1990, time.January, 1)
		repo.On("FindByID", mock.Anything, id).Return(&core.Employee{
			ID: id, Email: "a@x.com", FullName: "A", Birthday: &birthday, Hobbies: []string{"x"},
		}, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*core.Employee")).Return(nil, nil)
		publisher.On("PublishEmployee", mock.Anything, mock.AnythingOfType("*core.Employee")).Return(nil)

		req := httptest.NewRequest(http.MethodPut, "/employees/"+id.String(), bytes.NewBufferString(`{"email":"c@x.com"}`))
		rec := httptest.NewRecorder()

		h.Update(rec, withID(req, id.String()))

		assert.Equal(t, http.StatusOK, rec.Code)
		var response core.Employee
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, id, response.ID)
		assert.Equal(t, "c@x.com", response.Email)
		assert.Empty(t, response.FullName)
		assert.Nil(t, response.Birthday)
		assert.Empty(t, response.Hobbies)
		publisher.AssertNumberOfCalls(t, "PublishEmployee", 1)
	})

	t.Run("not found", func(t *testing.T) {
		h, repo, publisher := setupTestHandler()
		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, nil)

		req := httptest.NewRequest(http.MethodPut, "/employees/"+id.String(), bytes.NewBufferString(`{"email":"c@x.com"}`))
		rec := httptest.NewRecorder()

		h.Update(rec, withID(req, id.String()))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", decodeErrorInfo(t, rec).ErrorCode)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		publisher.AssertNotCalled(t, "PublishEmployee", mock.Anything, mock.Anything)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		h, _, _ := setupTestHandler()
		id := uuid.New()

		req := httptest.NewRequest(http.MethodPut, "/employees/"+id.String(), bytes.NewBufferString(`{`))
		rec := httptest.NewRecorder()

		h.Update(rec, withID(req, id.String()))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Delete(t *testing.T) {
	t.Run("successful deletion", func(t *testing.T) {
		h, repo, publisher := setupTestHandler()
		id := uuid.New()
		repo.On("DeleteByID", mock.Anything, id).Return(nil)
		publisher.On("PublishDeletion", mock.Anything, id).Return(nil)

		rec := httptest.NewRecorder()
		h.Delete(rec, withID(httptest.NewRequest(http.MethodDelete, "/employees/"+id.String(), nil), id.String()))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		publisher.AssertExpectations(t)
	})

	t.Run("publish failure still succeeds", func(t *testing.T) {
		h, repo, publisher := setupTestHandler()
		id := uuid.New()
		repo.On("DeleteByID", mock.Anything, id).Return(nil)
		publisher.On("PublishDeletion", mock.Anything, id).Return(errors.New("broker down"))

		rec := httptest.NewRecorder()
		h.Delete(rec, withID(httptest.NewRequest(http.MethodDelete, "/employees/"+id.String(), nil), id.String()))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("invalid UUID", func(t *testing.T) {
		h, repo, _ := setupTestHandler()

		rec := httptest.NewRecorder()
		h.Delete(rec, withID(httptest.NewRequest(http.MethodDelete, "/employees/nope", nil), "nope"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		repo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	})
}
