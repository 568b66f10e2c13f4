package api

// GenerateRequest is the request body for POST /api/v1/generate.
type GenerateRequest struct {
	// Persona defaults to "article" when omitted. An explicit empty string is
	// rejected like any other unknown persona.
	Persona        *string `json:"persona,omitempty" example:"article"`
	CompetitorData string  `json:"competitor_data"`
	// BrandVoiceData defaults to the fixed "no brand data" sentence.
	BrandVoiceData string `json:"brand_voice_data,omitempty"`
}

// GenerateResponse is the JSON representation of a finished generation.
type GenerateResponse struct {
	ID              string `json:"id"`
	Persona         string `json:"persona"`
	TargetWordCount int    `json:"target_word_count"`
	Brief           string `json:"brief,omitempty"`
	Content         string `json:"content"`
	HTML            string `json:"html"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
