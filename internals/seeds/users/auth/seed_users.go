package user

import (
	"context"
	"errors"
	"log"

	"assessku_backend/internals/constants"
	"assessku_backend/internals/features/users/user/model"
	"assessku_backend/internals/features/users/user/service"
	"assessku_backend/internals/helpers/apperr"

	"gorm.io/gorm"
)

// SeedAdmin membuat akun ADMIN awal kalau email belum terdaftar.
func SeedAdmin(ctx context.Context, db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		log.Println("ℹ️ ADMIN_EMAIL / ADMIN_PASSWORD kosong, seed admin dilewati.")
		return nil
	}
	u := &model.UserModel{
		UserName: "Administrator",
		Email:    email,
		Password: password,
		Role:     constants.RoleAdmin,
		IsActive: true,
	}
	if err := service.NewUserService(db).Create(ctx, u); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			log.Printf("ℹ️ User dengan email '%s' sudah ada, dilewati.", email)
			return nil
		}
		return err
	}
	log.Printf("✅ Berhasil insert admin '%s'", u.Email)
	return nil
}
