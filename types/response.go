package types

type ErrorResponse struct {
	Error string `json:"error"`
}

type QueryResponse struct {
	Answer               string  `json:"answer"`
	MatchedFragmentIndex int     `json:"matchedFragmentIndex"`
	Similarity           float32 `json:"similarity"`
}

type UploadResponse struct {
	Key            string `json:"key"`
	FragmentsAdded int    `json:"fragments_added"`
}

type ListDocumentsResponse struct {
	Files []DocumentInfo `json:"files"`
}

type ProcessingDocumentStatus struct {
	Status             string  `json:"status"`
	Message            string  `json:"message"`
	Progress           float64 `json:"progress"`
	TotalFragments     int     `json:"total_fragments"`
	ProcessedFragments int     `json:"processed_fragments"`
}
