package nodes

// Graph node keys, in execution order.
const (
	NodeInputConverter = "input"
	NodeDraft          = "draft"
	NodeFlight         = "flight"
	NodeHotel          = "hotel"
	NodeNormalize      = "normalize"
	NodeFilter         = "filter"
	NodeSalesPitch     = "sales_pitch"
)

// StageOrder lists the model-backed stages in the order they run.
var StageOrder = []string{
	NodeDraft,
	NodeFlight,
	NodeHotel,
	NodeNormalize,
	NodeFilter,
	NodeSalesPitch,
}
