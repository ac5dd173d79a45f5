package accumulator

import "accumulator-api/internal/history"

// ApplyRequest is the JSON body for POST /accumulator/{id}/apply.
type ApplyRequest struct {
	Op    string `json:"op"`    // "add", "subtract", "multiply", "divide"
	Value int32  `json:"value"` // the operand applied against the running result
}

// ResultResponse is the JSON response for every endpoint that reports the
// accumulator's value (apply, undo, redo, result, session creation).
type ResultResponse struct {
	SessionID string `json:"session_id"`
	Result    int32  `json:"result"`
}

// HistoryResponse is the JSON response for GET /accumulator/{id}/history.
type HistoryResponse struct {
	SessionID string               `json:"session_id"`
	Depth     int                  `json:"depth"`
	Steps     []history.StepRecord `json:"steps"`
	Result    int32                `json:"result"`
}
