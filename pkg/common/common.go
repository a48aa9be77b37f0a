package common

// Node variants. The variant tag is part of a node's identity: ids are only
// unique within their variant's namespace (npi / entity_id / associate_id),
// so every lookup key pairs the two.
const (
	VariantProvider        = "Provider"
	VariantCorporateEntity = "CorporateEntity"
	VariantPerson          = "Person"
	VariantExclusion       = "Exclusion"
	VariantPaymentSummary  = "PaymentSummary"
)

// Edge relation types, matching the labels the ETL writes into the graph.
const (
	RelationOwns            = "OWNS"
	RelationControlledBy    = "CONTROLLED_BY"
	RelationReceivedPayment = "RECEIVED_PAYMENT"
	RelationExcludedBy      = "EXCLUDED_BY"
)

// OwnershipVariants lists the variants that participate in ownership chains.
// Exclusion and PaymentSummary nodes can leak into a path set through bad
// upstream data and must be filtered out of chain projections.
var OwnershipVariants = map[string]bool{
	VariantProvider:        true,
	VariantCorporateEntity: true,
	VariantPerson:          true,
}

// NodeRef identifies a node by variant plus namespaced id.
type NodeRef struct {
	Variant string
	ID      string
}

// Key returns the globally unique dedup key for the referenced node.
func (r NodeRef) Key() string {
	return r.Variant + ":" + r.ID
}

// Node is a graph node. Attributes are owned by the ingestion pipeline and
// read-only from the traversal's perspective.
type Node struct {
	Ref        NodeRef
	Attributes map[string]any
}

// Edge is a directed, typed edge between two nodes. OWNS edges carry
// ownership_pct, role_code, role_text and association_date attributes.
type Edge struct {
	From       NodeRef
	To         NodeRef
	Relation   string
	Attributes map[string]any
}

// Key returns the dedup key that collapses parallel duplicate edges seen via
// multiple path instances.
func (e Edge) Key() string {
	return e.From.Key() + ">" + e.To.Key() + ":" + e.Relation
}

// PathStep is one hop of a raw path: the edge walked and the node it reached.
type PathStep struct {
	Edge Edge
	Node Node
}

// RawPath is an ordered walk outward from a traversal seed. The seed itself
// is not part of the path; the node of Steps[0] sits at depth 1.
type RawPath []PathStep

// ChainEntry is one row of the flattened ownership chain. Field names match
// the shapes the frontend already consumes and must not change.
type ChainEntry struct {
	EntityID        string   `json:"entity_id"`
	Name            string   `json:"name"`
	EntityType      string   `json:"entityType"`
	OwnershipPct    *float64 `json:"ownershipPct"`
	RoleCode        string   `json:"roleCode"`
	RoleText        string   `json:"roleText"`
	AssociationDate string   `json:"associationDate,omitempty"`
	Depth           int      `json:"depth"`
}

// GraphNode is a renderable node. Type carries the variant tag verbatim so
// the UI can pick icons and styling without the backend encoding that choice.
type GraphNode struct {
	ID    string         `json:"id"`
	Type  string         `json:"type"`
	Label string         `json:"label"`
	Data  map[string]any `json:"data"`
}

// GraphEdge is a renderable edge. IDs are deterministic over
// (source, target, relation) so repeated assembly yields identical output.
type GraphEdge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Relation string `json:"relation"`
}

// GraphProjection is the deduplicated node/edge set handed to the UI graph
// renderer. Every edge's source and target reference a node in Nodes.
type GraphProjection struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}
