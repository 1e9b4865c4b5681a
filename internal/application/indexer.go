package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/vertexlabs/go-auth-boilerplate/internal/domain/entity"
	"github.com/vertexlabs/go-auth-boilerplate/internal/domain/repository"
)

// PersonIndexer mirrors person records into Elasticsearch for full-text
// search. All methods are no-ops when no client is configured, so the rest
// of the application never has to care whether search is enabled.
type PersonIndexer struct {
	ES    *elasticsearch.Client
	Index string
	Log   *logrus.Logger
}

func NewPersonIndexer(es *elasticsearch.Client, index string, log *logrus.Logger) *PersonIndexer {
	return &PersonIndexer{ES: es, Index: index, Log: log}
}

func (ix *PersonIndexer) enabled() bool {
	return ix != nil && ix.ES != nil
}

// IndexPerson upserts the person's public document under its vertex id.
// Indexing failures are logged, never surfaced; search lag must not break
// registration or profile updates.
func (ix *PersonIndexer) IndexPerson(ctx context.Context, p *entity.Person) {
	if !ix.enabled() || p == nil || p.ID == "" {
		return
	}
	body, err := json.Marshal(p.PublicDocument())
	if err != nil {
		ix.Log.WithError(err).Warn("failed to encode person for indexing")
		return
	}
	res, err := ix.ES.Index(ix.Index, bytes.NewReader(body),
		ix.ES.Index.WithContext(ctx),
		ix.ES.Index.WithDocumentID(p.ID),
		ix.ES.Index.WithRefresh("false"),
	)
	if err != nil {
		ix.Log.WithError(err).Warn("failed to index person")
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		ix.Log.WithField("status", res.StatusCode).Warn("elasticsearch rejected person document")
	}
}

// SearchPersons runs a multi-field match over indexed persons. Returns an
// error when search is not configured so the handler can say so.
func (ix *PersonIndexer) SearchPersons(ctx context.Context, query string) ([]repository.Document, error) {
	if !ix.enabled() {
		return nil, fmt.Errorf("search is not configured")
	}
	q := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{entity.KeyFirstName, entity.KeyLastName, entity.KeyEmail},
			},
		},
	}
	body, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(ctx),
		ix.ES.Search.WithIndex(ix.Index),
		ix.ES.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search failed with status %d", res.StatusCode)
	}
	var parsed struct {
		Hits struct {
			Hits []struct {
				Source repository.Document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	docs := make([]repository.Document, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		docs = append(docs, h.Source.Without(entity.KeyPassword))
	}
	return docs, nil
}
