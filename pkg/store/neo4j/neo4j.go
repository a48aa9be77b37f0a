package neo4j

import (
	"context"
	"fmt"

	"github.com/claidex/backend/pkg/common"
	"github.com/claidex/backend/pkg/store"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Store issues bounded-depth ownership path queries against a Neo4j
// instance populated by the ETL's CSV export. It is read-only.
type Store struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewStoreParams contains connection configuration for a Neo4j store.
type NewStoreParams struct {
	URI      string
	User     string
	Password string
	Database string
}

// NewStore connects to Neo4j and verifies connectivity so a misconfigured
// store fails at startup rather than on the first request.
func NewStore(ctx context.Context, params NewStoreParams) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(params.URI, neo4j.BasicAuth(params.User, params.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrGraphUnavailable, err)
	}
	return &Store{
		driver:   driver,
		database: params.Database,
	}, nil
}

// Close releases the underlying driver and its connection pool.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// FindOwnershipPaths resolves the seed node, then walks OWNS/CONTROLLED_BY
// edges in either direction up to the clamped depth, returning at most
// store.MaxPaths raw paths.
func (s *Store) FindOwnershipPaths(ctx context.Context, seed common.NodeRef, maxDepth int) (*store.OwnershipPaths, error) {
	depth := store.ClampDepth(maxDepth)

	label, idProp, err := seedPattern(seed.Variant)
	if err != nil {
		return nil, err
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	seedQuery := fmt.Sprintf("MATCH (seed:%s {%s: $id}) RETURN seed LIMIT 1", label, idProp)
	res, err := session.Run(ctx, seedQuery, map[string]any{"id": seed.ID})
	if err != nil {
		return nil, classify(err)
	}
	if !res.Next(ctx) {
		if err := res.Err(); err != nil {
			return nil, classify(err)
		}
		return nil, fmt.Errorf("seed %s: %w", seed.Key(), common.ErrNotFound)
	}
	seedValue, ok := res.Record().Values[0].(neo4j.Node)
	if !ok {
		return nil, fmt.Errorf("unexpected seed record shape for %s", seed.Key())
	}
	seedNode := mapNode(seedValue)

	// Variable-length bounds cannot be parameterized in Cypher; depth is a
	// clamped int and label/idProp come from a fixed table, so the format
	// string stays injection-safe.
	pathQuery := fmt.Sprintf(
		"MATCH p = (seed:%s {%s: $id})-[:OWNS|CONTROLLED_BY*1..%d]-(m) RETURN p LIMIT %d",
		label, idProp, depth, store.MaxPaths,
	)
	res, err = session.Run(ctx, pathQuery, map[string]any{"id": seed.ID})
	if err != nil {
		return nil, classify(err)
	}

	paths := make([]common.RawPath, 0)
	for res.Next(ctx) {
		p, ok := res.Record().Values[0].(neo4j.Path)
		if !ok {
			continue
		}
		paths = append(paths, mapPath(p))
	}
	if err := res.Err(); err != nil {
		return nil, classify(err)
	}

	return &store.OwnershipPaths{
		Seed:      seedNode,
		Paths:     paths,
		Truncated: len(paths) == store.MaxPaths,
	}, nil
}

// seedPattern returns the node label and id property for a traversal seed.
// Only providers and corporate entities are valid seeds.
func seedPattern(variant string) (string, string, error) {
	switch variant {
	case common.VariantProvider:
		return "Provider", "npi", nil
	case common.VariantCorporateEntity:
		return "CorporateEntity", "entity_id", nil
	default:
		return "", "", fmt.Errorf("unsupported seed variant %q: %w", variant, common.ErrInvalidInput)
	}
}

func classify(err error) error {
	if neo4j.IsConnectivityError(err) {
		return fmt.Errorf("%w: %v", common.ErrGraphUnavailable, err)
	}
	return err
}

var idProperties = map[string]string{
	common.VariantProvider:        "npi",
	common.VariantCorporateEntity: "entity_id",
	common.VariantPerson:          "associate_id",
	common.VariantExclusion:       "exclusion_id",
	common.VariantPaymentSummary:  "record_id",
}

func mapNode(n neo4j.Node) common.Node {
	variant := ""
	for _, l := range n.Labels {
		if _, known := idProperties[l]; known {
			variant = l
			break
		}
	}
	if variant == "" && len(n.Labels) > 0 {
		variant = n.Labels[0]
	}

	id := ""
	if prop, ok := idProperties[variant]; ok {
		if v, ok := n.Props[prop]; ok {
			id = stringValue(v)
		}
	}
	if id == "" {
		// Fall back to the store-internal element id so a mislabeled node
		// still dedupes consistently.
		id = n.ElementId
	}

	return common.Node{
		Ref:        common.NodeRef{Variant: variant, ID: id},
		Attributes: n.Props,
	}
}

func mapPath(p neo4j.Path) common.RawPath {
	refs := make(map[string]common.NodeRef, len(p.Nodes))
	nodes := make(map[string]common.Node, len(p.Nodes))
	for _, n := range p.Nodes {
		mapped := mapNode(n)
		refs[n.ElementId] = mapped.Ref
		nodes[n.ElementId] = mapped
	}

	path := make(common.RawPath, 0, len(p.Relationships))
	for i, rel := range p.Relationships {
		if i+1 >= len(p.Nodes) {
			break
		}
		step := common.PathStep{
			Edge: common.Edge{
				From:       refs[rel.StartElementId],
				To:         refs[rel.EndElementId],
				Relation:   rel.Type,
				Attributes: rel.Props,
			},
			Node: nodes[p.Nodes[i+1].ElementId],
		}
		path = append(path, step)
	}
	return path
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
