package health

type Response struct {
	Status       string `json:"status"`
	Service      string `json:"service"`
	Version      string `json:"version,omitempty"`
	Store        string `json:"store"`
	TextProvider string `json:"text_provider"`
	ImageAI      bool   `json:"image_ai"`
}

type PingResponse struct {
	Message string `json:"message"`
}

// what the running server has configured
type Info struct {
	Version      string
	Store        string
	TextProvider string
	ImageAI      bool
}
