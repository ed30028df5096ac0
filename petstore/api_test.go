package petstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/apictl/client"
	"github.com/s0up4200/apictl/models"
	"github.com/s0up4200/apictl/response"
)

// fakeStore is an in-memory petstore server
type fakeStore struct {
	mu   sync.Mutex
	pets map[int64]map[string]any

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	delay       time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		pets: map[int64]map[string]any{
			1: {"id": 1, "name": "rex", "status": "available", "photoUrls": []string{"http://img/rex.png"},
				"category": map[string]any{"id": 1, "name": "dogs"},
				"tags":     []map[string]any{{"id": 1, "name": "good"}}},
			2: {"id": 2, "name": "tom", "status": "sold", "photoUrls": []string{}},
			3: {"id": 3, "name": "polly", "status": "available", "photoUrls": []string{}},
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *fakeStore) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /pet/findByStatus", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		wanted := r.URL.Query()["status"]
		result := []map[string]any{}
		for id := int64(1); id <= int64(len(s.pets)); id++ {
			pet := s.pets[id]
			for _, status := range wanted {
				if pet["status"] == status {
					result = append(result, pet)
				}
			}
		}
		writeJSON(w, http.StatusOK, result)
	})

	mux.HandleFunc("GET /pet/{id}", func(w http.ResponseWriter, r *http.Request) {
		n := s.inFlight.Add(1)
		defer s.inFlight.Add(-1)
		for {
			peak := s.maxInFlight.Load()
			if n <= peak || s.maxInFlight.CompareAndSwap(peak, n) {
				break
			}
		}
		time.Sleep(s.delay)

		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"code": 400, "message": "Invalid ID supplied"})
			return
		}

		s.mu.Lock()
		pet, ok := s.pets[id]
		s.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"code": 1, "type": "error", "message": "Pet not found"})
			return
		}
		writeJSON(w, http.StatusOK, pet)
	})

	mux.HandleFunc("POST /pet", func(w http.ResponseWriter, r *http.Request) {
		var pet map[string]any
		if err := json.NewDecoder(r.Body).Decode(&pet); err != nil {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"message": "Invalid input"})
			return
		}

		s.mu.Lock()
		id := int64(len(s.pets) + 1)
		pet["id"] = id
		s.pets[id] = pet
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, pet)
	})

	mux.HandleFunc("GET /pet/{id}/image", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="pet-%s.png"`, r.PathValue("id")))
		w.Write([]byte("\x89PNG"))
	})

	mux.HandleFunc("GET /store/inventory", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"available": 2, "sold": 1, "pending": 0})
	})

	mux.HandleFunc("GET /store/order/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "10" {
			writeJSON(w, http.StatusNotFound, map[string]any{"message": "Order not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id": 10, "petId": 1, "quantity": 2,
			"shipDate": "2024-03-01T10:30:00.000+0000",
			"status":   "placed", "complete": false,
		})
	})

	mux.HandleFunc("GET /user/login", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("password") != "secret" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid username/password supplied"})
			return
		}
		w.Header().Set("X-Rate-Limit", "5000")
		w.Header().Set("X-Expires-After", "2024-03-01T11:30:00Z")
		writeJSON(w, http.StatusOK, "logged in user session:1700000000")
	})

	mux.HandleFunc("GET /user/{username}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"id": 7, "username": r.PathValue("username"), "email": "jane@example.com", "userStatus": 1,
		})
	})

	return mux
}

func newTestAPI(t *testing.T, store *fakeStore, opts ...APIOption) *API {
	t.Helper()
	server := httptest.NewServer(store.handler())
	t.Cleanup(server.Close)

	c, err := client.New(server.URL, "special-key", zerolog.Nop(), client.WithTempDir(t.TempDir()))
	require.NoError(t, err)

	api, err := NewAPI(c, opts...)
	require.NoError(t, err)
	return api
}

func TestRegister(t *testing.T) {
	reg := models.NewRegistry()
	require.NoError(t, Register(reg))
	assert.Equal(t, []string{"ApiResponse", "Category", "Order", "Pet", "Tag", "User"}, reg.Names())

	// registering twice keeps the first factories
	require.NoError(t, Register(reg))
	assert.Len(t, reg.Names(), 6)
}

func TestGetPetByID(t *testing.T) {
	api := newTestAPI(t, newFakeStore())

	pet, err := api.GetPetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, &Pet{
		ID:        1,
		Category:  &Category{ID: 1, Name: "dogs"},
		Name:      "rex",
		PhotoURLs: []string{"http://img/rex.png"},
		Tags:      []Tag{{ID: 1, Name: "good"}},
		Status:    StatusAvailable,
	}, pet)

	_, err = api.GetPetByID(context.Background(), 99)
	require.Error(t, err)
	apiErr, ok := response.AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsNotFound())
	assert.Contains(t, apiErr.Body, "Pet not found")
}

func TestFindPetsByStatus(t *testing.T) {
	api := newTestAPI(t, newFakeStore())

	pets, err := api.FindPetsByStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, pets, 2)
	assert.Equal(t, "rex", pets[0].Name)
	assert.Equal(t, "polly", pets[1].Name)

	pets, err = api.FindPetsByStatus(context.Background(), StatusSold, StatusPending)
	require.NoError(t, err)
	require.Len(t, pets, 1)
	assert.Equal(t, "tom", pets[0].Name)
}

func TestAddPet(t *testing.T) {
	api := newTestAPI(t, newFakeStore())

	pet, err := api.AddPet(context.Background(), &Pet{Name: "nemo", PhotoURLs: []string{}, Status: StatusPending})
	require.NoError(t, err)
	assert.Equal(t, int64(4), pet.ID)
	assert.Equal(t, "nemo", pet.Name)

	got, err := api.GetPetByID(context.Background(), pet.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)
}

func TestGetPetsByID(t *testing.T) {
	t.Run("keeps order", func(t *testing.T) {
		api := newTestAPI(t, newFakeStore())

		pets, err := api.GetPetsByID(context.Background(), []int64{3, 1, 2})
		require.NoError(t, err)
		require.Len(t, pets, 3)
		assert.Equal(t, "polly", pets[0].Name)
		assert.Equal(t, "rex", pets[1].Name)
		assert.Equal(t, "tom", pets[2].Name)
	})

	t.Run("bounded concurrency", func(t *testing.T) {
		store := newFakeStore()
		store.delay = 20 * time.Millisecond
		api := newTestAPI(t, store, WithConcurrency(2))

		ids := []int64{1, 2, 3, 1, 2, 3, 1, 2}
		pets, err := api.GetPetsByID(context.Background(), ids)
		require.NoError(t, err)
		assert.Len(t, pets, len(ids))
		assert.LessOrEqual(t, store.maxInFlight.Load(), int32(2))
	})

	t.Run("failure", func(t *testing.T) {
		api := newTestAPI(t, newFakeStore())

		pets, err := api.GetPetsByID(context.Background(), []int64{1, 42})
		require.Error(t, err)
		assert.Nil(t, pets)
		apiErr, ok := response.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})

	t.Run("empty", func(t *testing.T) {
		api := newTestAPI(t, newFakeStore())
		pets, err := api.GetPetsByID(context.Background(), nil)
		require.NoError(t, err)
		assert.Nil(t, pets)
	})
}

func TestGetInventory(t *testing.T) {
	api := newTestAPI(t, newFakeStore())

	inventory, err := api.GetInventory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"available": 2, "sold": 1, "pending": 0}, inventory)
}

func TestGetOrderByID(t *testing.T) {
	api := newTestAPI(t, newFakeStore())

	order, err := api.GetOrderByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), order.PetID)
	assert.Equal(t, int32(2), order.Quantity)
	assert.Equal(t, OrderPlaced, order.Status)
	require.NotNil(t, order.ShipDate)
	assert.True(t, order.ShipDate.Equal(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)))

	_, err = api.GetOrderByID(context.Background(), 11)
	require.Error(t, err)
}

func TestOrderJSON(t *testing.T) {
	body, err := json.Marshal(Order{PetID: 1, Quantity: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"petId":1,"quantity":1}`, string(body))

	shipDate := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	body, err = json.Marshal(Order{PetID: 1, ShipDate: &shipDate})
	require.NoError(t, err)
	assert.JSONEq(t, `{"petId":1,"shipDate":"2024-03-01T10:30:00Z"}`, string(body))

	var order Order
	require.NoError(t, order.Hydrate(map[string]any{"petId": int64(1)}))
	assert.Nil(t, order.ShipDate)
}

func TestGetUserByName(t *testing.T) {
	api := newTestAPI(t, newFakeStore())

	user, err := api.GetUserByName(context.Background(), "jane")
	require.NoError(t, err)
	assert.Equal(t, &User{ID: 7, Username: "jane", Email: "jane@example.com", UserStatus: 1}, user)
}

func TestLoginUser(t *testing.T) {
	api := newTestAPI(t, newFakeStore())

	session, err := api.LoginUser(context.Background(), "jane", "secret")
	require.NoError(t, err)
	assert.Equal(t, "logged in user session:1700000000", session.Message)
	assert.Equal(t, "5000", session.RateLimit)
	assert.Equal(t, "2024-03-01T11:30:00Z", session.ExpiresAfter)

	_, err = api.LoginUser(context.Background(), "jane", "wrong")
	require.Error(t, err)
	apiErr, ok := response.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestDownloadPetImage(t *testing.T) {
	api := newTestAPI(t, newFakeStore())

	file, err := api.DownloadPetImage(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "pet-1.png", file.Name)

	content, err := os.ReadFile(file.Path)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(content))
}

type stubCaller struct {
	value any
}

func (s stubCaller) Call(context.Context, client.Request) (any, *response.Response, error) {
	return s.value, nil, nil
}

func TestUnexpectedValue(t *testing.T) {
	api := newAPI(stubCaller{value: "not a pet"})

	_, err := api.GetPetByID(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, response.ErrTypeMismatch))

	pet, err := newAPI(stubCaller{}).GetPetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, pet)
}
