package controller

import (
	"medleave_backend/middleware"

	"gorm.io/gorm"
)

// OwnedBy limits a query to the caller's rows. Admins see every row.
func OwnedBy(claims *middleware.Claims) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if claims.IsAdmin() {
			return db
		}
		if claims == nil {
			return db.Where("1 = 0")
		}
		return db.Where("user_id = ?", claims.ID)
	}
}

func ownerOf(claims *middleware.Claims) *uint {
	if claims == nil {
		return nil
	}
	id := claims.ID
	return &id
}
