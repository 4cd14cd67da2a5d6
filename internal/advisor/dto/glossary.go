package dto

// TermResponse is the body returned by GET /explain/:term.
type TermResponse struct {
	Term    string `json:"term"`
	Meaning string `json:"meaning"`
}
