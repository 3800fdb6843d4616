package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/Skotchmaster/furniture_supply/internal/models"
)

// Index keeps a full-text copy of catalog items.
type Index interface {
	IndexItem(ctx context.Context, item models.ModelItem, category models.ModelCategory) error
	DeleteItem(ctx context.Context, id string) error
	SearchItems(ctx context.Context, query string, activeOnly bool, from, size int) (int64, []string, error)
}

type Document struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	CategoryID     string `json:"category_id"`
	Category       string `json:"category"`
	BasePrice      int64  `json:"base_price"`
	IsActive       bool   `json:"is_active"`
	CategoryActive bool   `json:"category_active"`
}

type ESIndex struct {
	Client *elasticsearch.Client
	Name   string
}

func NewESIndex(client *elasticsearch.Client, name string) *ESIndex {
	return &ESIndex{Client: client, Name: name}
}

func (x *ESIndex) IndexItem(ctx context.Context, item models.ModelItem, category models.ModelCategory) error {
	doc := Document{
		ID:             item.ID,
		Name:           item.Name,
		CategoryID:     item.CategoryID,
		Category:       category.Name,
		BasePrice:      item.BasePrice,
		IsActive:       item.IsActive,
		CategoryActive: category.IsActive,
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("search: encode: %w", err)
	}
	res, err := x.Client.Index(x.Name, &buf,
		x.Client.Index.WithContext(ctx),
		x.Client.Index.WithDocumentID(item.ID),
	)
	if err != nil {
		return fmt.Errorf("search: index %s: %w", item.ID, err)
	}
	defer res.Body.Close()
	return responseError("index", res)
}

// DeleteItem treats a missing document as deleted.
func (x *ESIndex) DeleteItem(ctx context.Context, id string) error {
	res, err := x.Client.Delete(x.Name, id, x.Client.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("search: delete %s: %w", id, err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	return responseError("delete", res)
}

func (x *ESIndex) SearchItems(ctx context.Context, query string, activeOnly bool, from, size int) (int64, []string, error) {
	boolQuery := map[string]any{
		"must": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "category"},
				"fuzziness": "AUTO",
			},
		},
	}
	if activeOnly {
		boolQuery["filter"] = []any{
			map[string]any{"term": map[string]any{"is_active": true}},
			map[string]any{"term": map[string]any{"category_active": true}},
		}
	}
	body := map[string]any{
		"query": map[string]any{"bool": boolQuery},
		"from":  from,
		"size":  size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: encode: %w", err)
	}
	res, err := x.Client.Search(
		x.Client.Search.WithContext(ctx),
		x.Client.Search.WithIndex(x.Name),
		x.Client.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: query: %w", err)
	}
	defer res.Body.Close()
	if err := responseError("search", res); err != nil {
		return 0, nil, err
	}

	var r struct {
		Hits struct {
			Total struct{ Value int64 } `json:"total"`
			Hits  []struct {
				ID     string   `json:"_id"`
				Source Document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("search: decode: %w", err)
	}
	ids := make([]string, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		id := h.Source.ID
		if id == "" {
			id = h.ID
		}
		ids = append(ids, id)
	}
	return r.Hits.Total.Value, ids, nil
}

func responseError(op string, res *esapi.Response) error {
	if !res.IsError() {
		return nil
	}
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("search: %s: %s: %s", op, res.Status(), bytes.TrimSpace(body))
}
