package wikidata

// SearchMatch describes which part of an entity matched a search query.
type SearchMatch struct {
	Type string `json:"type"` // "label" | "alias"
	Text string `json:"text"`
}

// SearchResult is a single candidate returned by a label search.
type SearchResult struct {
	ID          string      `json:"id"`
	Label       string      `json:"label"`
	Description string      `json:"description"`
	Aliases     []string    `json:"aliases"`
	Match       SearchMatch `json:"match"`
}

type searchResponse struct {
	Search []SearchResult `json:"search"`
	Error  *apiError      `json:"error"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type snakDataValue struct {
	Type  string `json:"type"`
	Value struct {
		EntityType string `json:"entity-type"`
		ID         string `json:"id"`
	} `json:"value"`
}

type snak struct {
	SnakType  string         `json:"snaktype"`
	Property  string         `json:"property"`
	DataValue *snakDataValue `json:"datavalue"`
}

type claim struct {
	MainSnak snak   `json:"mainsnak"`
	Rank     string `json:"rank"`
}

type entityLabel struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

type entity struct {
	ID      string                 `json:"id"`
	Labels  map[string]entityLabel `json:"labels"`
	Claims  map[string][]claim     `json:"claims"`
	Missing *string                `json:"missing"`
}

type entitiesResponse struct {
	Entities map[string]entity `json:"entities"`
	Error    *apiError         `json:"error"`
}
