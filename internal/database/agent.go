package database

import (
	"context"

	"github.com/rafaelmdutra/pix-ledger/models"
)

// AgentStore resolves the optional attribute document referenced from
// users.ia_agent_id. The document lives outside the primary database; a
// missing or unreachable document degrades to empty attributes, never to an
// error surfaced to the caller.
type AgentStore interface {
	GetAgent(ctx context.Context, agentID string) (models.Agent, error)
}

// NoAgentStore is the default when no secondary store is configured.
type NoAgentStore struct{}

func (NoAgentStore) GetAgent(ctx context.Context, agentID string) (models.Agent, error) {
	return models.EmptyAgent(), nil
}

// ResolveAgent looks up the user's agent document, falling back to empty
// attributes on absence or lookup failure.
func ResolveAgent(ctx context.Context, store AgentStore, user *models.User) models.Agent {
	if store == nil || user.AgentID == "" {
		return models.EmptyAgent()
	}
	agent, err := store.GetAgent(ctx, user.AgentID)
	if err != nil {
		return models.EmptyAgent()
	}
	if agent.Attributes == nil {
		agent.Attributes = map[string]any{}
	}
	return agent
}
