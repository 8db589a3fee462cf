package seeds

import (
	"context"

	"assessku_backend/internals/configs"
	"assessku_backend/internals/seeds/question_bank"
	users "assessku_backend/internals/seeds/users/auth"

	"gorm.io/gorm"
)

func RunAllSeeds(ctx context.Context, db *gorm.DB, questionBankFile string) error {
	//* User
	if err := users.SeedAdmin(ctx, db, configs.GetEnv("ADMIN_EMAIL"), configs.GetEnv("ADMIN_PASSWORD")); err != nil {
		return err
	}

	//* Bank soal + rubrik
	if questionBankFile == "" {
		questionBankFile = configs.SeedFile
	}
	return question_bank.SeedQuestionBankFromYAML(ctx, db, questionBankFile)
}
