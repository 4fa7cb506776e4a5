package worker

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TypeEmailDeliver = "email:deliver"
	TypeAlertScan    = "alerts:scan"
)

// EmailPayload is the queued shape of one outbound email.
type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func NewEmailTask(p EmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEmailDeliver, data), nil
}

// NewAlertScanTask has no payload; the handler scans all active alerts.
func NewAlertScanTask() *asynq.Task {
	return asynq.NewTask(TypeAlertScan, nil)
}
