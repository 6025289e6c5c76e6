package config

import "github.com/spf13/viper"

// SizeLimitOverride returns a configured metadata size ceiling for a
// container format, in bytes, or 0 when none is configured.
func SizeLimitOverride(format string) int {
	return viper.GetInt("limits." + format)
}

// ExtraFields returns fields from config that are merged into every
// attached history, below caller-supplied fields.
func ExtraFields() map[string]any {
	return viper.GetStringMap("attach.fields")
}

// OllamaURL returns the Ollama endpoint for the describe command.
func OllamaURL() string {
	return viper.GetString("describe.ollama_url")
}

// OllamaModel returns the model used by the describe command.
func OllamaModel() string {
	return viper.GetString("describe.model")
}

// ViewWidth returns the default display width for the view command.
func ViewWidth() int {
	return viper.GetInt("view.width")
}
