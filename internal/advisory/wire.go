package advisory

// CropsRequest is the JSON body of the advisory endpoint.
type CropsRequest struct {
	PromptText string `json:"promptText,omitempty" example:"My tomato leaves have brown spots"`
	Language   string `json:"language"             example:"en"`
	ImageData  string `json:"imageData,omitempty"  example:"data:image/jpeg;base64,/9j/4AAQ..."`
}

// CropsResponse is the success body of the advisory endpoint. HTML is the
// sanitized rendering of Advice.
type CropsResponse struct {
	Advice string `json:"advice"`
	HTML   string `json:"html,omitempty"`
}
