package domain

// Condition is a claimable medical condition in the wizard catalog
type Condition struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// ConditionInfo is an entry returned by the condition query endpoint.
// It is a separate dataset from the wizard catalog.
type ConditionInfo struct {
	Name             string   `json:"name" yaml:"name"`
	Description      string   `json:"description" yaml:"description"`
	Symptoms         []string `json:"symptoms" yaml:"symptoms"`
	RequiredEvidence []string `json:"requiredEvidence" yaml:"required_evidence"`
}

// ConditionQueryRequest is the request body of the condition query endpoint
type ConditionQueryRequest struct {
	Query *string `json:"query" binding:"required"`
}

// SelectConditionRequest toggles a catalog condition in the selection
type SelectConditionRequest struct {
	ConditionID int `json:"condition_id" form:"condition_id" binding:"required"`
}

// ConditionOption is a catalog entry annotated with its selection status
type ConditionOption struct {
	Condition
	Selected bool `json:"selected"`
}
