package llm

import "fmt"

// creates the text generator for the configured provider.
// a missing API key is not an error: the generator reports ErrUnavailable on use
func NewTextGenerator(config Config) (TextGenerator, error) {
	switch config.Provider {
	case ProviderAnthropic, "":
		return NewAnthropicGenerator(config), nil
	case ProviderOpenAI:
		return NewOpenAIGenerator(config), nil
	case ProviderGemini:
		return NewGeminiGenerator(config), nil
	default:
		return nil, fmt.Errorf("unsupported text provider: %s", config.Provider)
	}
}
