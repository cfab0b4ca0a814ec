// Package jobrepo provides data transfer objects and mapping functions for
// transport job persistence. Only non-terminal jobs enter the snapshot; the
// planned path is deliberately not stored because the road network may have
// changed by the time the snapshot is restored.
package jobrepo

import (
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/transport"

	"github.com/google/uuid"
)

// JobDTO represents the database structure for persisting transport jobs.
// Seq preserves queue order across a restore.
type JobDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq         int64     `gorm:"autoIncrement;uniqueIndex"`
	Resource    string
	Amount      int
	Source      int64
	Destination int64
	Cost        float64
	Status      int
	OrderID     *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for job entities.
func (JobDTO) TableName() string {
	return "transport_jobs"
}

// fromDomain converts a job aggregate to its database representation.
func fromDomain(job *transport.Job) JobDTO {
	var orderID *uuid.UUID
	if id := job.Order(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return JobDTO{
		ID:          job.ID().Bytes(),
		Resource:    string(job.Resource()),
		Amount:      job.Amount(),
		Source:      int64(job.Source()),
		Destination: int64(job.Destination()),
		Cost:        job.Cost(),
		Status:      int(job.Status()),
		OrderID:     orderID,
	}
}

// toDomain converts a database DTO back to a job aggregate.
func toDomain(dto JobDTO) (*transport.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	return transport.RestoreJob(
		id,
		dto.Resource,
		dto.Amount,
		kernel.NodeRef(dto.Source),
		kernel.NodeRef(dto.Destination),
		dto.Cost,
		transport.Status(dto.Status),
		orderID,
	)
}
