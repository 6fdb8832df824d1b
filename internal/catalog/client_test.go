package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverply/warranty-admin/internal/models"
)

func TestSearch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/catalog/products", r.URL.Path)
		require.Equal(t, "toaster", r.URL.Query().Get("q"))
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"resources": []Resource{
				{ID: "gid://shopify/Product/1", Title: "Toaster", ImageURL: "https://cdn/t.png"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-token")
	resources, err := c.Search(context.Background(), "toaster", models.ResourceTypeProduct)
	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, "gid://shopify/Product/1", resources[0].ID)
	assert.Equal(t, "Toaster", resources[0].Title)
}

func TestSearch_CollectionsEndpoint(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/catalog/collections", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"resources": []Resource{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-token")
	_, err := c.Search(context.Background(), "summer", models.ResourceTypeCollection)
	require.NoError(t, err)
}

func TestSearch_ErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-token")
	_, err := c.Search(context.Background(), "toaster", models.ResourceTypeProduct)
	require.Error(t, err)
}

func TestCollectionProducts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "/products"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"product_ids": []string{"gid://shopify/Product/1", "gid://shopify/Product/2"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-token")
	ids, err := c.CollectionProducts(context.Background(), "gid://shopify/Collection/1")
	require.NoError(t, err)
	assert.Equal(t, []string{"gid://shopify/Product/1", "gid://shopify/Product/2"}, ids)
}
