package scheduler

import "errors"

var ErrSyncRunning = errors.New("sincronização já em andamento")

// ManualSyncer é o contrato comum dos agendadores disparáveis pela API
type ManualSyncer interface {
	TriggerManualSync()
	GetStatus() map[string]any
}
