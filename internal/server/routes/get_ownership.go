package routes

import (
	"net/http"
	"regexp"

	"github.com/claidex/backend/internal/server/middleware"
	"github.com/claidex/backend/pkg/common"
	"github.com/claidex/backend/pkg/ownership"
	"github.com/claidex/backend/pkg/store"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

var npiPattern = regexp.MustCompile(`^[0-9]{10}$`)

// GetOwnershipHandler resolves the ownership neighborhood of a provider or
// corporate entity and returns the renderable graph plus the flattened
// chain. Exactly one of npi / entityId selects the seed.
func GetOwnershipHandler(c echo.Context) error {
	type getOwnershipParams struct {
		NPI      string `query:"npi"`
		EntityID string `query:"entityId"`
		Depth    int    `query:"depth"`
	}

	type getOwnershipResponse struct {
		Nodes     []common.GraphNode  `json:"nodes"`
		Edges     []common.GraphEdge  `json:"edges"`
		Chain     []common.ChainEntry `json:"chain"`
		Truncated bool                `json:"truncated"`
	}

	params := new(getOwnershipParams)
	if err := c.Bind(params); err != nil {
		return writeInvalid(c, "Invalid request params")
	}

	if (params.NPI == "") == (params.EntityID == "") {
		return writeInvalid(c, "Exactly one of npi or entityId is required")
	}

	seed := common.NodeRef{Variant: common.VariantCorporateEntity, ID: params.EntityID}
	if params.NPI != "" {
		if !npiPattern.MatchString(params.NPI) {
			return writeInvalid(c, "npi must be 10 digits")
		}
		seed = common.NodeRef{Variant: common.VariantProvider, ID: params.NPI}
	}

	depth := params.Depth
	if depth == 0 {
		depth = 3
	}
	depth = store.ClampDepth(depth)

	ctx := c.Request().Context()
	graph := c.(*middleware.AppContext).App.Graph

	result, err := graph.FindOwnershipPaths(ctx, seed, depth)
	if err != nil {
		return writeError(c, err, "Failed to resolve ownership")
	}

	set := ownership.Collect(result.Seed, result.Paths)
	projection := ownership.Assemble(set)

	return c.JSON(http.StatusOK, getOwnershipResponse{
		Nodes:     projection.Nodes,
		Edges:     projection.Edges,
		Chain:     ownership.ProjectChain(set),
		Truncated: result.Truncated,
	})
}
