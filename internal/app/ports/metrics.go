package ports

import "hearthvale/internal/domain/economy"

type ActionMetrics interface {
	RecordSuccess(action economy.ActionType)
	RecordRejected(action economy.ActionType)
	RecordRetry()
	RecordConflict()
	RecordFailure()
}
