package types

// QueryRequest is the public entry point of the query pipeline.
type QueryRequest struct {
	DocumentKey string `json:"documentKey"`
	Question    string `json:"question"`
}

// UploadRequest carries document metadata submitted alongside an upload.
type UploadRequest struct {
	Title string `json:"title"`
}
