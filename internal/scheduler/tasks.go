// Package scheduler runs background work on asynq: CRM sync for captured
// leads and bulk rescoring after a scoring version bump.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskCRMSyncLead = "crm:sync_lead"

const TaskLeadsRescore = "leads:rescore"

type CRMSyncLeadPayload struct {
	LeadID string `json:"leadId"`
}

type LeadsRescorePayload struct {
	Reason string `json:"reason,omitempty"`
}

func NewCRMSyncLeadTask(payload CRMSyncLeadPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCRMSyncLead, data), nil
}

func ParseCRMSyncLeadPayload(task *asynq.Task) (CRMSyncLeadPayload, error) {
	var payload CRMSyncLeadPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return CRMSyncLeadPayload{}, err
	}
	return payload, nil
}

func NewLeadsRescoreTask(payload LeadsRescorePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadsRescore, data), nil
}

func ParseLeadsRescorePayload(task *asynq.Task) (LeadsRescorePayload, error) {
	var payload LeadsRescorePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadsRescorePayload{}, err
	}
	return payload, nil
}
