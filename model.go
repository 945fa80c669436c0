package agentbus

import (
	"fmt"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/hupe1980/agentbus/model"
	"github.com/hupe1980/agentbus/model/anthropic"
	"github.com/hupe1980/agentbus/model/openai"
)

// NewModel constructs the chat model for the given provider. Supported
// providers are "openai" (the default when empty) and "anthropic"; name
// overrides the adapter's default model id when non-empty. Credentials are
// read from the environment by the underlying SDK clients.
func NewModel(provider, name string) (model.Model, error) {
	switch provider {
	case "", "openai":
		return openai.NewModel(func(o *openai.Options) {
			if name != "" {
				o.Model = name
			}
		}), nil
	case "anthropic":
		return anthropic.NewModel(func(o *anthropic.Options) {
			if name != "" {
				o.Model = anthropicsdk.Model(name)
			}
		}), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", provider)
	}
}
