// Package memstore is an in-memory vertex store used when no graph database
// is configured (development mode) and as the test double for the Neo4j
// adapter. It implements the same contract, including create-or-replace
// metadata bookkeeping, but intentionally keeps the reference
// check-then-act registration race: there is no unique index here.
package memstore

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vertexlabs/go-auth-boilerplate/internal/domain/repository"
)

type record struct {
	class string
	doc   repository.Document
}

// Store is a mutex-guarded map of vertices keyed by id.
type Store struct {
	mu      sync.Mutex
	records map[string]*record
	seq     int
}

var _ repository.VertexRepository = (*Store)(nil)

func New() *Store {
	return &Store{records: make(map[string]*record)}
}

func clone(doc repository.Document) repository.Document {
	out := make(repository.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

func (s *Store) matchesClass(r *record, class string) bool {
	return class == repository.ClassVertexBase || r.class == class
}

// compare applies an allow-listed operator. Values are compared numerically
// when both sides parse as numbers, as strings otherwise.
func compare(op repository.Operator, have any, want any) bool {
	hs := fmt.Sprint(have)
	ws := fmt.Sprint(want)
	switch op {
	case repository.OpEquals:
		return hs == ws
	case repository.OpNotEquals:
		return hs != ws
	case repository.OpContains:
		return strings.Contains(hs, ws)
	case repository.OpStartsWith:
		return strings.HasPrefix(hs, ws)
	case repository.OpEndsWith:
		return strings.HasSuffix(hs, ws)
	}
	hf, herr := strconv.ParseFloat(hs, 64)
	wf, werr := strconv.ParseFloat(ws, 64)
	numeric := herr == nil && werr == nil
	switch op {
	case repository.OpGreater:
		if numeric {
			return hf > wf
		}
		return hs > ws
	case repository.OpGreaterEq:
		if numeric {
			return hf >= wf
		}
		return hs >= ws
	case repository.OpLess:
		if numeric {
			return hf < wf
		}
		return hs < ws
	case repository.OpLessEq:
		if numeric {
			return hf <= wf
		}
		return hs <= ws
	}
	return false
}

func (s *Store) FindOneByProperty(ctx context.Context, class, property string, value any) (repository.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if !s.matchesClass(r, class) {
			continue
		}
		if have, ok := r.doc[property]; ok && compare(repository.OpEquals, have, value) {
			return clone(r.doc), nil
		}
	}
	return nil, nil
}

func (s *Store) FindByClass(ctx context.Context, class string, filters []repository.Filter) ([]repository.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var docs []repository.Document
	for _, r := range s.records {
		if !s.matchesClass(r, class) {
			continue
		}
		match := true
		for _, f := range filters {
			have, ok := r.doc[f.Property]
			if !ok || !compare(f.Op, have, f.Value) {
				match = false
				break
			}
		}
		if match {
			docs = append(docs, clone(r.doc))
		}
	}
	return docs, nil
}

func (s *Store) Create(ctx context.Context, class string, doc repository.Document) (repository.Document, error) {
	if !repository.ValidIdentifier(class) {
		return nil, repository.WrapStoreErr("create", fmt.Errorf("invalid vertex class %q", class))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	stored := repository.Document{}
	for k, v := range doc {
		if repository.IsReservedKey(k) {
			continue
		}
		stored[k] = v
	}
	id := uuid.NewString()
	stored[repository.KeyID] = id
	stored[repository.KeyRID] = fmt.Sprintf("#mem:%d", s.seq)
	stored[repository.KeyClass] = class
	stored[repository.KeyVersion] = int64(1)
	stored[repository.KeyCreatedDate] = time.Now().UTC().Format(time.RFC3339Nano)
	s.records[id] = &record{class: class, doc: stored}
	return clone(stored), nil
}

func (s *Store) Replace(ctx context.Context, class, id string, doc repository.Document) (repository.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok || !s.matchesClass(r, class) {
		return nil, repository.ErrRecordNotFound
	}
	next := repository.Document{}
	for k, v := range doc {
		if repository.IsReservedKey(k) {
			continue
		}
		next[k] = v
	}
	next[repository.KeyID] = id
	next[repository.KeyRID] = r.doc[repository.KeyRID]
	next[repository.KeyClass] = r.class
	if ver, ok := r.doc[repository.KeyVersion].(int64); ok {
		next[repository.KeyVersion] = ver + 1
	} else {
		next[repository.KeyVersion] = int64(1)
	}
	next[repository.KeyCreatedDate] = r.doc[repository.KeyCreatedDate]
	r.doc = next
	return clone(next), nil
}
