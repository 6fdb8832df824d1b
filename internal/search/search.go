package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/coverply/warranty-admin/internal/models"
)

func NewClient(addr, user, password string) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{addr},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch error: %s: %s", res.Status(), body)
	}

	return client, nil
}

// Indexer keeps the definition search index in step with the database. A nil
// Indexer is a no-op so unit tests run without a cluster.
type Indexer struct {
	ES    *elasticsearch.Client
	Index string
}

func (ix *Indexer) IndexDefinition(ctx context.Context, def *models.WarrantyDefinition) error {
	if ix == nil || ix.ES == nil {
		return nil
	}

	doc, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("index definition: %w", err)
	}

	res, err := ix.ES.Index(
		ix.Index,
		bytes.NewReader(doc),
		ix.ES.Index.WithContext(ctx),
		ix.ES.Index.WithDocumentID(strconv.FormatUint(uint64(def.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("index definition: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index definition: %s", res.Status())
	}
	return nil
}

func (ix *Indexer) DeleteDefinition(ctx context.Context, id uint) error {
	if ix == nil || ix.ES == nil {
		return nil
	}

	res, err := ix.ES.Delete(
		ix.Index,
		strconv.FormatUint(uint64(id), 10),
		ix.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete definition from index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete definition from index: %s", res.Status())
	}
	return nil
}

// SearchDefinitions runs a fuzzy name/description match for the admin list
// page.
func (ix *Indexer) SearchDefinitions(ctx context.Context, query string, from, size int) (int64, []models.WarrantyDefinition, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search definitions: %w", err)
	}

	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(ctx),
		ix.ES.Search.WithIndex(ix.Index),
		ix.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search definitions: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, nil, fmt.Errorf("search definitions: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.WarrantyDefinition `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	defs := make([]models.WarrantyDefinition, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		defs[i] = hit.Source
	}
	return r.Hits.Total.Value, defs, nil
}
