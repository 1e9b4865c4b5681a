package graphdb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/vertexlabs/go-auth-boilerplate/internal/domain/repository"
)

var _ repository.VertexRepository = (*Store)(nil)

// matchClause builds the MATCH pattern for a class. Labels cannot be bound
// as parameters, so the class name is validated and backtick-quoted.
func matchClause(class string) (string, error) {
	if !repository.ValidIdentifier(class) {
		return "", fmt.Errorf("invalid vertex class %q", class)
	}
	return "MATCH (v:`" + class + "`)", nil
}

// condition renders one filter comparison. Property names and values are
// always bound as parameters; only the operator keyword is interpolated,
// and it comes from the allow-list.
func condition(op repository.Operator, propParam, valParam string) (string, error) {
	lhs := "v[$" + propParam + "]"
	rhs := "$" + valParam
	switch op {
	case repository.OpEquals:
		return lhs + " = " + rhs, nil
	case repository.OpNotEquals:
		return lhs + " <> " + rhs, nil
	case repository.OpGreater:
		return lhs + " > " + rhs, nil
	case repository.OpGreaterEq:
		return lhs + " >= " + rhs, nil
	case repository.OpLess:
		return lhs + " < " + rhs, nil
	case repository.OpLessEq:
		return lhs + " <= " + rhs, nil
	case repository.OpContains:
		return lhs + " CONTAINS " + rhs, nil
	case repository.OpStartsWith:
		return lhs + " STARTS WITH " + rhs, nil
	case repository.OpEndsWith:
		return lhs + " ENDS WITH " + rhs, nil
	}
	return "", fmt.Errorf("unsupported query operator %q", op)
}

// docFromNode converts a Neo4j node into a store document. The element id
// doubles as the store-native record reference; the class tag is the most
// specific label on the node.
func docFromNode(node neo4j.Node) repository.Document {
	doc := repository.Document{}
	for k, v := range node.Props {
		doc[k] = v
	}
	doc[repository.KeyRID] = node.GetElementId()
	class := repository.ClassVertexBase
	for _, l := range node.Labels {
		if l != repository.ClassVertexBase {
			class = l
			break
		}
	}
	doc[repository.KeyClass] = class
	return doc
}

// writableProps extracts the properties to persist: everything except the
// adapter-managed metadata keys.
func writableProps(doc repository.Document) map[string]any {
	props := make(map[string]any, len(doc))
	for k, v := range doc {
		if repository.IsReservedKey(k) {
			continue
		}
		props[k] = v
	}
	return props
}

func (s *Store) FindOneByProperty(ctx context.Context, class, property string, value any) (repository.Document, error) {
	match, err := matchClause(class)
	if err != nil {
		return nil, repository.WrapStoreErr("find one", err)
	}
	sess := s.session(ctx)
	defer sess.Close(ctx)

	result, err := sess.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := match + " WHERE v[$prop] = $value RETURN v LIMIT 1"
		res, err := tx.Run(ctx, query, map[string]any{"prop": property, "value": value})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, res.Err()
		}
		nodeVal, _ := res.Record().Get("v")
		node, ok := nodeVal.(neo4j.Node)
		if !ok {
			return nil, fmt.Errorf("unexpected result type %T", nodeVal)
		}
		return docFromNode(node), nil
	})
	if err != nil {
		return nil, repository.WrapStoreErr("find one", err)
	}
	if result == nil {
		return nil, nil
	}
	return result.(repository.Document), nil
}

func (s *Store) FindByClass(ctx context.Context, class string, filters []repository.Filter) ([]repository.Document, error) {
	match, err := matchClause(class)
	if err != nil {
		return nil, repository.WrapStoreErr("find by class", err)
	}

	params := map[string]any{}
	conds := make([]string, 0, len(filters))
	for i, f := range filters {
		if !repository.ValidIdentifier(f.Property) {
			return nil, repository.WrapStoreErr("find by class", fmt.Errorf("invalid property name %q", f.Property))
		}
		propParam := fmt.Sprintf("p%d", i)
		valParam := fmt.Sprintf("v%d", i)
		cond, err := condition(f.Op, propParam, valParam)
		if err != nil {
			return nil, repository.WrapStoreErr("find by class", err)
		}
		conds = append(conds, cond)
		params[propParam] = f.Property
		params[valParam] = f.Value
	}
	query := match
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " RETURN v"

	sess := s.session(ctx)
	defer sess.Close(ctx)

	result, err := sess.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		var docs []repository.Document
		for res.Next(ctx) {
			nodeVal, _ := res.Record().Get("v")
			if node, ok := nodeVal.(neo4j.Node); ok {
				docs = append(docs, docFromNode(node))
			}
		}
		return docs, res.Err()
	})
	if err != nil {
		return nil, repository.WrapStoreErr("find by class", err)
	}
	return result.([]repository.Document), nil
}

func (s *Store) Create(ctx context.Context, class string, doc repository.Document) (repository.Document, error) {
	if !repository.ValidIdentifier(class) {
		return nil, repository.WrapStoreErr("create", fmt.Errorf("invalid vertex class %q", class))
	}
	labels := ":`" + repository.ClassVertexBase + "`"
	if class != repository.ClassVertexBase {
		labels += ":`" + class + "`"
	}

	props := writableProps(doc)
	props[repository.KeyID] = uuid.NewString()
	props[repository.KeyVersion] = int64(1)
	props[repository.KeyCreatedDate] = time.Now().UTC().Format(time.RFC3339Nano)

	sess := s.session(ctx)
	defer sess.Close(ctx)

	result, err := sess.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := "CREATE (v" + labels + ") SET v = $props RETURN v"
		res, err := tx.Run(ctx, query, map[string]any{"props": props})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			if err := res.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("no result from vertex creation")
		}
		nodeVal, _ := res.Record().Get("v")
		node, ok := nodeVal.(neo4j.Node)
		if !ok {
			return nil, fmt.Errorf("unexpected result type %T", nodeVal)
		}
		return docFromNode(node), nil
	})
	if err != nil {
		return nil, repository.WrapStoreErr("create", err)
	}
	return result.(repository.Document), nil
}

func (s *Store) Replace(ctx context.Context, class, id string, doc repository.Document) (repository.Document, error) {
	match, err := matchClause(class)
	if err != nil {
		return nil, repository.WrapStoreErr("replace", err)
	}
	props := writableProps(doc)

	sess := s.session(ctx)
	defer sess.Close(ctx)

	result, err := sess.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		// Whole-document replace: SET v = $props clears everything, then the
		// immutable metadata is restored and the version bumped.
		query := match + ` WHERE v.id = $id
			WITH v, v.created_date AS cd, coalesce(v.` + "`@version`" + `, 0) AS ver
			SET v = $props, v.id = $id, v.created_date = cd, v.` + "`@version`" + ` = ver + 1
			RETURN v`
		res, err := tx.Run(ctx, query, map[string]any{"id": id, "props": props})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			if err := res.Err(); err != nil {
				return nil, err
			}
			return nil, repository.ErrRecordNotFound
		}
		nodeVal, _ := res.Record().Get("v")
		node, ok := nodeVal.(neo4j.Node)
		if !ok {
			return nil, fmt.Errorf("unexpected result type %T", nodeVal)
		}
		return docFromNode(node), nil
	})
	if err != nil {
		if err == repository.ErrRecordNotFound {
			return nil, err
		}
		return nil, repository.WrapStoreErr("replace", err)
	}
	return result.(repository.Document), nil
}
