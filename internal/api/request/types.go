package request

// CreateMatchRequest is the request body for starting a match
type CreateMatchRequest struct {
	Players []string `json:"players"`
}

// SelectCellRequest is the request body for choosing a board cell.
// Category accepts either the tag ("science") or the label ("Science").
type SelectCellRequest struct {
	Category string `json:"category"`
	Value    int    `json:"value"`
}

// AnswerRequest is the request body for answering the active question
type AnswerRequest struct {
	Choice *int `json:"choice"`
}

// SaveRequest names a save slot for save and restore
type SaveRequest struct {
	Name string `json:"name"`
}
