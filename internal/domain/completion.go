package domain

// CompletionRequest is a single chat-completion call to the generative provider.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Model        string
	Temperature  float32
	MaxTokens    int // 0 = provider default
}

// CompletionResult holds the completion text and token usage.
type CompletionResult struct {
	Text         string
	PromptTokens int
	TotalTokens  int
}
