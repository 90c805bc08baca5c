package user

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	userapp "github.com/nesmy/users-api/application/user"
	userdomain "github.com/nesmy/users-api/domain/user"
	"github.com/nesmy/users-api/infrastructure/persistence/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func datePtr(d userdomain.Date) *userdomain.Date { return &d }

func newTestRouter() (*gin.Engine, *userapp.Service) {
	gin.SetMode(gin.TestMode)

	repo := mocks.NewMockUserRepository()
	svc := userapp.NewService(repo, userdomain.NewValidator(), 18)

	engine := gin.New()
	NewController(svc).RegisterRoutes(engine.Group("/api/v1"))
	return engine, svc
}

func adultPayload() *userdomain.User {
	return &userdomain.User{
		Email:       strPtr("andrii@gmail.com"),
		FirstName:   strPtr("Andrii"),
		LastName:    strPtr("Muts"),
		BirthDate:   datePtr(userdomain.NewDate(1998, time.September, 9)),
		Address:     strPtr("Lviv"),
		PhoneNumber: strPtr("+380977020222"),
	}
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, payload *userdomain.User) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(DataDTO{Data: payload})
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func doGet(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeUser(t *testing.T, body *bytes.Buffer) *userdomain.User {
	t.Helper()
	var envelope DataDTO
	require.NoError(t, json.Unmarshal(body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data)
	return envelope.Data
}

type errorBody struct {
	Errors []struct {
		FieldName string `json:"fieldName"`
		Message   string `json:"message"`
	} `json:"errors"`
}

func decodeErrors(t *testing.T, body *bytes.Buffer) errorBody {
	t.Helper()
	var eb errorBody
	require.NoError(t, json.Unmarshal(body.Bytes(), &eb))
	return eb
}

func TestCreateUserReturns201(t *testing.T) {
	engine, _ := newTestRouter()

	w := doJSON(t, engine, http.MethodPost, "/api/v1/users", adultPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	created := decodeUser(t, w.Body)
	require.NotNil(t, created.UserID)
	assert.Equal(t, "andrii@gmail.com", *created.Email)
	assert.Equal(t, "1998-09-09", created.BirthDate.String())
}

func TestCreateUserEmptyPayloadReturns400(t *testing.T) {
	engine, _ := newTestRouter()

	w := doJSON(t, engine, http.MethodPost, "/api/v1/users", &userdomain.User{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	eb := decodeErrors(t, w.Body)
	require.Len(t, eb.Errors, 1)
	assert.Equal(t, "", eb.Errors[0].FieldName)
	assert.Equal(t, "No data is submitted.", eb.Errors[0].Message)
}

func TestCreateUserInvalidDataReturns422(t *testing.T) {
	engine, _ := newTestRouter()

	payload := adultPayload()
	payload.Email = strPtr("andrii")
	payload.BirthDate = datePtr(userdomain.Today().AddDate(0, 0, 10))

	w := doJSON(t, engine, http.MethodPost, "/api/v1/users", payload)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	eb := decodeErrors(t, w.Body)
	require.Len(t, eb.Errors, 2)
	assert.Equal(t, "email", eb.Errors[0].FieldName)
	assert.Equal(t, "birthDate", eb.Errors[1].FieldName)
}

func TestCreateUserUnderageReturns422(t *testing.T) {
	engine, _ := newTestRouter()

	payload := adultPayload()
	payload.BirthDate = datePtr(userdomain.Today().AddDate(-17, 0, 0))

	w := doJSON(t, engine, http.MethodPost, "/api/v1/users", payload)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	eb := decodeErrors(t, w.Body)
	require.Len(t, eb.Errors, 1)
	assert.Equal(t, "birthDate", eb.Errors[0].FieldName)
	assert.Equal(t, "The birth date is less than 18.", eb.Errors[0].Message)
}

func TestCreateUserMalformedBodyReturns400(t *testing.T) {
	engine, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUser(t *testing.T) {
	engine, _ := newTestRouter()

	w := doJSON(t, engine, http.MethodPost, "/api/v1/users", adultPayload())
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeUser(t, w.Body)

	w = doGet(engine, fmt.Sprintf("/api/v1/users/%d", *created.UserID))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decodeUser(t, w.Body))

	w = doGet(engine, "/api/v1/users/999")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doGet(engine, "/api/v1/users/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateUserKeyMismatchReturns400(t *testing.T) {
	engine, _ := newTestRouter()

	w := doJSON(t, engine, http.MethodPost, "/api/v1/users", adultPayload())
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeUser(t, w.Body)

	payload := adultPayload()
	mismatched := *created.UserID + 1
	payload.UserID = &mismatched

	w = doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", *created.UserID), payload)
	require.Equal(t, http.StatusBadRequest, w.Code)

	eb := decodeErrors(t, w.Body)
	require.Len(t, eb.Errors, 1)
	assert.Equal(t, "userId", eb.Errors[0].FieldName)
	assert.Equal(t, "Key field parameters mismatch.", eb.Errors[0].Message)
}

func TestUpdateUserNotFoundReturns404(t *testing.T) {
	engine, _ := newTestRouter()

	payload := adultPayload()
	id := int64(999)
	payload.UserID = &id

	w := doJSON(t, engine, http.MethodPut, "/api/v1/users/999", payload)
	require.Equal(t, http.StatusNotFound, w.Code)

	eb := decodeErrors(t, w.Body)
	require.Len(t, eb.Errors, 1)
	assert.Equal(t, "Record is not found.", eb.Errors[0].Message)
}

func TestUpdateUserReplaces(t *testing.T) {
	engine, _ := newTestRouter()

	w := doJSON(t, engine, http.MethodPost, "/api/v1/users", adultPayload())
	created := decodeUser(t, w.Body)

	payload := &userdomain.User{
		UserID:    created.UserID,
		Email:     strPtr("updated@gmail.com"),
		FirstName: strPtr("Updated"),
		LastName:  strPtr("Updated"),
		BirthDate: datePtr(userdomain.NewDate(1998, time.September, 9)),
	}
	w = doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", *created.UserID), payload)
	require.Equal(t, http.StatusOK, w.Code)

	updated := decodeUser(t, w.Body)
	assert.Equal(t, "updated@gmail.com", *updated.Email)
	assert.Nil(t, updated.Address)
}

func TestPatchUserMergesFields(t *testing.T) {
	engine, _ := newTestRouter()

	w := doJSON(t, engine, http.MethodPost, "/api/v1/users", adultPayload())
	created := decodeUser(t, w.Body)

	payload := &userdomain.User{
		UserID: created.UserID,
		Email:  strPtr("updated@gmail.com"),
	}
	w = doJSON(t, engine, http.MethodPatch, fmt.Sprintf("/api/v1/users/%d", *created.UserID), payload)
	require.Equal(t, http.StatusOK, w.Code)

	patched := decodeUser(t, w.Body)
	assert.Equal(t, "updated@gmail.com", *patched.Email)
	assert.Equal(t, "Andrii", *patched.FirstName)
	assert.Equal(t, "Lviv", *patched.Address)
}

func TestDeleteUser(t *testing.T) {
	engine, _ := newTestRouter()

	w := doJSON(t, engine, http.MethodPost, "/api/v1/users", adultPayload())
	created := decodeUser(t, w.Body)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", *created.UserID), nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User was successfully deleted.", w.Body.String())

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/users/999", nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFindByBirthDateBetween(t *testing.T) {
	engine, _ := newTestRouter()

	w := doJSON(t, engine, http.MethodPost, "/api/v1/users", adultPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doGet(engine, "/api/v1/users?startBirthDate=1990-01-01&endBirthDate=2000-01-01")
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data []*userdomain.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "andrii@gmail.com", *envelope.Data[0].Email)
}

func TestFindByBirthDateBetweenBadRange(t *testing.T) {
	engine, _ := newTestRouter()

	w := doGet(engine, "/api/v1/users?startBirthDate=2005-01-01&endBirthDate=2000-01-01")
	require.Equal(t, http.StatusBadRequest, w.Code)

	eb := decodeErrors(t, w.Body)
	require.Len(t, eb.Errors, 1)
	assert.Equal(t, "", eb.Errors[0].FieldName)
	assert.Equal(t, "The start date is not before end date.", eb.Errors[0].Message)
}

func TestFindByBirthDateBetweenParamErrors(t *testing.T) {
	engine, _ := newTestRouter()

	w := doGet(engine, "/api/v1/users?endBirthDate=2000-01-01")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doGet(engine, "/api/v1/users?startBirthDate=01/01/1990&endBirthDate=2000-01-01")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
