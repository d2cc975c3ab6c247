package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-market/listing-service/internal/product/domain"
)

func snapshot() []*domain.Product {
	return []*domain.Product{
		{ID: "1", Title: "Calculus Textbook", Price: 45},
		{ID: "2", Title: "Desk Lamp", Price: 15},
		{ID: "3", Title: "Graphing Calculator", Price: 60},
		{ID: "4", Title: "Mini Fridge", Price: 45},
	}
}

func TestViewStateDerive(t *testing.T) {
	t.Run("FilterSortSearchCompose", func(t *testing.T) {
		state := &ViewState{
			Cached:      snapshot(),
			MaxPrice:    domain.PriceBound(50),
			SortOrder:   domain.SortAsc,
			SearchQuery: "e",
		}
		got := state.Derive()
		require.Len(t, got, 3)
		assert.Equal(t, "Desk Lamp", got[0].Title)
		assert.Equal(t, "Calculus Textbook", got[1].Title)
		assert.Equal(t, "Mini Fridge", got[2].Title)
	})

	t.Run("Deterministic", func(t *testing.T) {
		state := &ViewState{Cached: snapshot(), SortOrder: domain.SortDesc}
		first := state.Derive()
		second := state.Derive()
		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].ID, second[i].ID)
		}
	})

	t.Run("CacheNotMutated", func(t *testing.T) {
		state := &ViewState{Cached: snapshot(), SortOrder: domain.SortDesc, MaxPrice: domain.PriceBound(50)}
		state.Derive()
		assert.Equal(t, "1", state.Cached[0].ID)
		assert.Len(t, state.Cached, 4)
	})

	t.Run("NoBoundShowsEverything", func(t *testing.T) {
		state := &ViewState{Cached: snapshot()}
		assert.Len(t, state.Derive(), 4)
	})

	t.Run("ZeroBoundHidesEverythingPriced", func(t *testing.T) {
		state := &ViewState{Cached: snapshot(), MaxPrice: domain.PriceBound(0)}
		assert.Empty(t, state.Derive())
	})
}

func TestViewStateSelection(t *testing.T) {
	state := &ViewState{Cached: snapshot()}

	assert.Nil(t, state.Selected())

	state.Select("3")
	require.NotNil(t, state.Selected())
	assert.Equal(t, "Graphing Calculator", state.Selected().Title)

	state.ClearSelection()
	assert.Nil(t, state.Selected())

	state.Select("gone")
	assert.Nil(t, state.Selected())
}

func TestViewStateRefresh(t *testing.T) {
	t.Run("ReplacesCache", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]productDTO{
				{ID: "9", Title: "Bike", Price: 80},
			})
		}))
		defer srv.Close()

		state := &ViewState{Cached: snapshot()}
		require.NoError(t, state.Refresh(context.Background(), New(srv.URL)))
		require.Len(t, state.Cached, 1)
		assert.Equal(t, "Bike", state.Cached[0].Title)
	})

	t.Run("FailureLeavesCacheUntouched", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"message": "Internal Server Error"})
		}))
		defer srv.Close()

		state := &ViewState{Cached: snapshot()}
		err := state.Refresh(context.Background(), New(srv.URL))
		require.Error(t, err)
		assert.Len(t, state.Cached, 4)
	})
}

func TestViewStateSerialization(t *testing.T) {
	state := &ViewState{
		Cached:      snapshot()[:1],
		SortOrder:   domain.SortAsc,
		MaxPrice:    domain.PriceBound(50),
		SearchQuery: "calc",
		SelectedID:  "1",
	}
	data, err := json.Marshal(state)
	require.NoError(t, err)

	var restored ViewState
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, state.SortOrder, restored.SortOrder)
	assert.Equal(t, state.SelectedID, restored.SelectedID)
	require.NotNil(t, restored.MaxPrice)
	assert.Equal(t, float64(50), *restored.MaxPrice)
	require.Len(t, restored.Cached, 1)
	assert.Equal(t, "Calculus Textbook", restored.Cached[0].Title)
}
