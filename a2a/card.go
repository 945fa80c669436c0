package a2a

import (
	"github.com/a2aproject/a2a-go/a2a"

	"github.com/hupe1980/agentbus/core"
)

// CardOptions configures the generated agent card.
type CardOptions struct {
	// Version reported in the card.
	Version string
	// Skills advertised by the agent. Defaults to a single general skill
	// derived from the agent's name and description.
	Skills []a2a.AgentSkill
	// Provider identifies the organization serving the agent.
	Provider *a2a.AgentProvider
}

// NewAgentCard builds an A2A agent card for the given agent, served at url.
func NewAgentCard(agent core.Agent, url string, optFns ...func(o *CardOptions)) *a2a.AgentCard {
	opts := CardOptions{
		Version: "0.1.0",
		Provider: &a2a.AgentProvider{
			Org: "AgentBus",
			URL: "https://github.com/hupe1980/agentbus",
		},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	skills := opts.Skills
	if len(skills) == 0 {
		skills = []a2a.AgentSkill{{
			ID:          agent.Name(),
			Name:        agent.Name(),
			Description: agent.Description(),
			Tags:        []string{"general", "assistant"},
		}}
	}

	return &a2a.AgentCard{
		Name:               agent.Name(),
		Description:        agent.Description(),
		URL:                url,
		Version:            opts.Version,
		ProtocolVersion:    "1.0",
		DefaultInputModes:  []string{"text/plain"},
		DefaultOutputModes: []string{"text/plain"},
		Skills:             skills,
		Capabilities: a2a.AgentCapabilities{
			Streaming:              true,
			PushNotifications:      false,
			StateTransitionHistory: false,
		},
		PreferredTransport: a2a.TransportProtocolJSONRPC,
		Provider:           opts.Provider,
	}
}
