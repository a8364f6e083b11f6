package action

import "hearthvale/internal/domain/economy"

type ResultCode string

const (
	ResultOK       ResultCode = "OK"
	ResultRejected ResultCode = "REJECTED"
)

type Request struct {
	PlayerID       string
	IdempotencyKey string
	Payload        economy.Payload
}

type Response struct {
	ResultCode ResultCode           `json:"result_code"`
	Result     economy.ActionResult `json:"result"`
	Player     *economy.Player      `json:"player,omitempty"`
	Replayed   bool                 `json:"replayed,omitempty"`
	Attempts   int                  `json:"attempts"`
}
