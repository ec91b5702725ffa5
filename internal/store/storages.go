// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-social-graph/internal/logger"

// Storages groups the repositories built on one database connection.
type Storages struct {
	UserRepository
	SessionRepository
	FollowRepository
}

// NewStorages builds every repository on db.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, logger),
		SessionRepository: NewSessionRepository(db, logger),
		FollowRepository:  NewFollowRepository(db, logger),
	}
}
