package mealdb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL, APIKey: "test-key", Timeout: 2 * time.Second})
}

func mealsJSON(n int) string {
	meals := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		meals = append(meals, fmt.Sprintf(`{"idMeal":"%d","strMeal":"Meal %d","strMealThumb":"https://img/%d.jpg"}`, i, i, i))
	}
	return `{"meals":[` + strings.Join(meals, ",") + `]}`
}

func TestSearch_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test-key/search.php", r.URL.Path)
		assert.Equal(t, "chicken", r.URL.Query().Get("s"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(mealsJSON(2)))
	})

	hits, err := client.Search(context.Background(), "chicken")
	require.NoError(t, err)
	assert.Equal(t, []Hit{
		{ID: "1", Name: "Meal 1", Thumbnail: "https://img/1.jpg"},
		{ID: "2", Name: "Meal 2", Thumbnail: "https://img/2.jpg"},
	}, hits)
}

func TestSearch_CapsAtFive(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(mealsJSON(9)))
	})

	hits, err := client.Search(context.Background(), "rice")
	require.NoError(t, err)
	assert.Len(t, hits, MaxHitsPerSearch)
	assert.Equal(t, "Meal 5", hits[4].Name)
}

func TestSearch_NullMeals(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meals":null}`))
	})

	hits, err := client.Search(context.Background(), "xyzzyplonk")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearch_SkipsNamelessMeals(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meals":[{"idMeal":"1","strMeal":null},{"idMeal":"2","strMeal":"Pie","strMealThumb":null}]}`))
	})

	hits, err := client.Search(context.Background(), "pie")
	require.NoError(t, err)
	assert.Equal(t, []Hit{{ID: "2", Name: "Pie"}}, hits)
}

func TestSearch_Errors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		hits, err := client.Search(context.Background(), "egg")
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
		assert.NotNil(t, hits)
		assert.Empty(t, hits)
	})

	t.Run("malformed body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		})

		hits, err := client.Search(context.Background(), "egg")
		assert.Error(t, err)
		assert.Empty(t, hits)
	})

	t.Run("canceled context", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(mealsJSON(1)))
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		hits, err := client.Search(ctx, "egg")
		assert.Error(t, err)
		assert.Empty(t, hits)
	})
}

func TestLookupIngredients(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch strings.ToLower(r.URL.Query().Get("s")) {
		case "arrabiata", "arrabiata penne":
			_, _ = w.Write([]byte(`{"meals":[
				{"idMeal":"1","strMeal":"Spicy Arrabiata Penne","strIngredient1":"penne"},
				{"idMeal":"2","strMeal":"Arrabiata","strMealThumb":"https://img/2.jpg",
				 "strIngredient1":"Penne Rigate","strMeasure1":"1 pound",
				 "strIngredient2":"Olive Oil","strMeasure2":" ",
				 "strIngredient3":"","strMeasure3":"",
				 "strIngredient4":null,"strMeasure4":null,
				 "strIngredient5":"Garlic","strMeasure5":"3 cloves"}]}`))
		default:
			_, _ = w.Write([]byte(`{"meals":null}`))
		}
	})

	t.Run("prefers exact name", func(t *testing.T) {
		hit, found, err := client.LookupIngredients(context.Background(), "Arrabiata")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "Arrabiata", hit.Name)
		assert.Equal(t, []string{"1 pound Penne Rigate", "Olive Oil", "3 cloves Garlic"}, hit.IngredientLines)
	})

	t.Run("partial name match is not found", func(t *testing.T) {
		hit, found, err := client.LookupIngredients(context.Background(), "arrabiata penne")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, hit)
	})

	t.Run("not found", func(t *testing.T) {
		hit, found, err := client.LookupIngredients(context.Background(), "unknown dish")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, hit)
	})

	t.Run("blank name", func(t *testing.T) {
		_, found, err := client.LookupIngredients(context.Background(), "  ")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{})
	assert.Equal(t, DefaultBaseURL+"/"+DefaultAPIKey, client.client.BaseURL)
	assert.Equal(t, 8*time.Second, client.client.GetClient().Timeout)
}

func TestSearch_RateLimited(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"meals":null}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, RatePerSecond: 0.001, Burst: 1})

	_, err := client.Search(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.Search(ctx, "second")
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSearch_RateLimitWaitBoundedByTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meals":null}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Timeout: 100 * time.Millisecond, RatePerSecond: 0.001, Burst: 1})

	_, err := client.Search(context.Background(), "first")
	require.NoError(t, err)

	// 呼叫端 context 沒有期限，等待仍受每次呼叫的逾時限制
	start := time.Now()
	_, err = client.Search(context.WithoutCancel(context.Background()), "second")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
