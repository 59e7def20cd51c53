package dto

type PresignUploadRequest struct {
	Filename string `json:"filename"`
}

type PresignUploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
}
