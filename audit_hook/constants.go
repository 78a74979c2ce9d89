package audithook

// Action constants for audit events.
const (
	// Product actions
	ActionProductCreated = "product.created"
	ActionProductUpdated = "product.updated"
	ActionProductDeleted = "product.deleted"
	ActionStockDepleted  = "stock.depleted"

	// Promotion actions
	ActionPromotionCreated  = "promotion.created"
	ActionPromotionRedeemed = "promotion.redeemed"

	// Order actions
	ActionOrderCreated       = "order.created"
	ActionOrderStatusChanged = "order.status_changed"
)

// Resource constants for audit events.
const (
	ResourceProduct   = "product"
	ResourcePromotion = "promotion"
	ResourceOrder     = "order"
)

// Category constants for audit events.
const (
	CategoryCatalog   = "catalog"
	CategoryInventory = "inventory"
	CategoryMarketing = "marketing"
	CategorySales     = "sales"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
