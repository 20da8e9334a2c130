// Package audit records who did what, as a best-effort side channel.
// A failing sink never affects the caller's result.
package audit

import (
	"encoding/json"

	"go-postgres-stockledger/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Entry struct {
	ActorID   uint
	ActorName string
	Action    string
	Entity    string
	EntityID  uint
	Detail    any
	RequestID string
	IP        string
	UserAgent string
}

type Sink interface {
	Record(e Entry)
}

// Default is the process-wide sink, set from main. It stays a NopSink until
// the database is up so early calls are safe.
var Default Sink = NopSink{}

type NopSink struct{}

func (NopSink) Record(Entry) {}

type DBSink struct {
	DB  *gorm.DB
	Log *logrus.Logger
}

func (s *DBSink) Record(e Entry) {
	detail := ""
	if e.Detail != nil {
		if b, err := json.Marshal(e.Detail); err == nil {
			detail = string(b)
		}
	}
	row := models.AuditLog{
		ActorID:   e.ActorID,
		ActorName: e.ActorName,
		Action:    e.Action,
		Entity:    e.Entity,
		EntityID:  e.EntityID,
		Detail:    detail,
		RequestID: e.RequestID,
		IP:        e.IP,
		UserAgent: e.UserAgent,
	}
	if err := s.DB.Create(&row).Error; err != nil && s.Log != nil {
		// Swallowed on purpose: audit must not fail the business operation.
		s.Log.WithFields(logrus.Fields{
			"module": "audit",
			"action": e.Action,
			"entity": e.Entity,
		}).Error(err.Error())
	}
}
