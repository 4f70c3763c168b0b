package repository

import (
	paymentRepo "partner-funnel/internal/repository/payment"
	sessionRepo "partner-funnel/internal/repository/session"
)

// IRepository is a container for all repository interfaces
type IRepository struct {
	Payment paymentRepo.IRepository
	Session sessionRepo.IRepository
}
