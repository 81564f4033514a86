package domain

// Candidate is a scored condition proposed for the reported symptoms.
type Candidate struct {
	Condition       string   `json:"condition"`
	Confidence      float64  `json:"confidence"`
	MatchedSymptoms []string `json:"matching_symptoms"`
	TotalSymptoms   int      `json:"total_symptoms"`
	SeverityScore   float64  `json:"severity_score"`
	MatchPercentage float64  `json:"match_percentage"`
	Emergency       bool     `json:"emergency"`
}

const (
	NodeTypeCondition = "condition"
	NodeTypeSymptom   = "symptom"

	RelationshipAssociatedWith = "ASSOCIATED_WITH"
)

type GraphNode struct {
	ID         string         `json:"id"`
	Label      string         `json:"label"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	IsInput    *bool          `json:"is_input,omitempty"`
}

type GraphLink struct {
	Source       string         `json:"source"`
	Target       string         `json:"target"`
	Relationship string         `json:"relationship"`
	Properties   map[string]any `json:"properties"`
}

type GraphProjection struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

func EmptyProjection() GraphProjection {
	return GraphProjection{Nodes: []GraphNode{}, Links: []GraphLink{}}
}

type EmergencyTier string

const (
	EmergencyTierNone   EmergencyTier = ""
	EmergencyTierStatic EmergencyTier = "static"
	EmergencyTierStore  EmergencyTier = "store"
)

type EmergencyResult struct {
	Triggered bool
	Message   string
	Tier      EmergencyTier
	Symptoms  []string
}

type AnalysisStatus string

const (
	StatusOK               AnalysisStatus = "ok"
	StatusEmergency        AnalysisStatus = "emergency"
	StatusStoreUnavailable AnalysisStatus = "store_unavailable"
)

const (
	DisclaimerGeneral   = "This is not medical advice. Consult a healthcare professional."
	DisclaimerEmergency = "This is a medical emergency. Call emergency services immediately."
)

// Analysis is the engine's answer for one request.
type Analysis struct {
	Predictions      []Candidate     `json:"predictions"`
	Graph            GraphProjection `json:"graph_data"`
	EmergencyWarning *string         `json:"emergency_warning"`
	Disclaimer       string          `json:"disclaimer"`
	Status           AnalysisStatus  `json:"status"`
}
