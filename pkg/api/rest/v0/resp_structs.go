package v0_rest

import (
	"github.com/clapo-social/client-core/pkg/structs"
)

type BaseResp struct {
	Error bool `json:"error"`
}

type ErrResp struct {
	Error  bool              `json:"error"`
	Type   string            `json:"type"`
	Fields map[string]string `json:"fields,omitempty"`
}

type EngagementResp struct {
	Error      bool                 `json:"error"`
	Engagement structs.V0Engagement `json:"engagement"`
}

type CommentsResp struct {
	Error    bool                `json:"error"`
	Comments []structs.V0Comment `json:"comments"`
}

type CreatePostResp struct {
	Error          bool           `json:"error"`
	Post           structs.V0Post `json:"post"`
	Message        string         `json:"message"`
	RewardGranted  bool           `json:"reward_granted"`
	TokenTxHash    string         `json:"token_tx_hash,omitempty"`
	MintSkipped    bool           `json:"mint_skipped"`
	MintFailReason string         `json:"mint_fail_reason,omitempty"`
}
