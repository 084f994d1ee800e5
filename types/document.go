package types

// Fragment is the unit of retrieval: a contiguous slice of a document's
// extracted text stored together with its embedding. Fragments of one
// document concatenated in index order reproduce the extracted text exactly.
type Fragment struct {
	DocumentID    string    `bson:"document_id" json:"document_id"`
	FragmentIndex int       `bson:"fragment_index" json:"fragment_index"`
	Text          string    `bson:"text" json:"text"`
	Embedding     []float32 `bson:"embedding" json:"embedding"`
	CreatedAt     int64     `bson:"created_at" json:"created_at"`
}

// DocumentInfo describes a stored document file.
type DocumentInfo struct {
	Key          string `json:"key"`
	Size         int64  `json:"size"`
	LastModified int64  `json:"last_modified"`
}

// QueryResult is the outcome of running the query pipeline.
type QueryResult struct {
	Answer               string  `json:"answer"`
	MatchedFragmentIndex int     `json:"matchedFragmentIndex"`
	Similarity           float32 `json:"similarity"`
}

// DocumentServiceConfig contains configuration options for document processing.
type DocumentServiceConfig struct {
	ChunkSize     int // Maximum size for text fragments, in characters
	IngestWorkers int // Bounded fan-out for embedding calls during ingestion
}
