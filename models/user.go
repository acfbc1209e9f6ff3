package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID            int             `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Email         string          `json:"email" db:"email"`
	Password      string          `json:"password,omitempty" db:"password"`
	Balance       decimal.Decimal `json:"balance" db:"balance"`
	CreditScore   int             `json:"credit_score" db:"credit_score"`
	Configuration map[string]any  `json:"configuration" db:"configuration"`
	AgentID       string          `json:"-" db:"ia_agent_id"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// Agent is the optional attribute blob kept in a secondary store and
// referenced from users.ia_agent_id. A missing document is not an error,
// it just means empty attributes.
type Agent struct {
	Attributes map[string]any `json:"attributes"`
}

func EmptyAgent() Agent {
	return Agent{Attributes: map[string]any{}}
}
