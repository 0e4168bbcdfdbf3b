package dto

import "time"

// ChatRequest is the body accepted by the chat proxy.
type ChatRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// ChatUsage mirrors the usage block of the upstream chat API.
type ChatUsage struct {
	TotalTokens int `json:"total_tokens"`
	TotalTime   int `json:"total_time"`
}

// ChatResponse is returned for answers produced locally by the chat rules.
type ChatResponse struct {
	Response  string    `json:"response"`
	Model     string    `json:"model"`
	Prompt    string    `json:"prompt"`
	Timestamp time.Time `json:"timestamp"`
	Usage     ChatUsage `json:"usage"`
}

// IdentityResponse is the canned answer for questions about the assistant itself.
type IdentityResponse struct {
	IdentityKeywords []string `json:"identity_keywords"`
	Response         string   `json:"response"`
}

// SpeakingStyle describes how forwarded prompts should be answered.
type SpeakingStyle struct {
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
}

// ChatRules is the content of rules.json.
type ChatRules struct {
	IdentityResponse IdentityResponse `json:"identity_response"`
	SpeakingStyle    *SpeakingStyle   `json:"speaking_style"`
	GeneralRules     []string         `json:"general_rules"`
}
