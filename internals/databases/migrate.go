package database

import (
	"log"

	"assessku_backend/internals/features/assessments/answers/model"
	asmModel "assessku_backend/internals/features/assessments/assessments/model"
	clModel "assessku_backend/internals/features/audit/changelogs/model"
	clientModel "assessku_backend/internals/features/clients/clients/model"
	ceModel "assessku_backend/internals/features/clients/engagements/model"
	qModel "assessku_backend/internals/features/questions/questions/model"
	authModel "assessku_backend/internals/features/users/auth/model"
	userModel "assessku_backend/internals/features/users/user/model"

	"gorm.io/gorm"
)

// Models: urutan mengikuti dependensi (users → bank soal → client → assessment → answer).
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&qModel.QuestionModel{},
		&qModel.RatingModel{},
		&clientModel.ClientModel{},
		&ceModel.EngagementModel{},
		&asmModel.AssessmentModel{},
		&asmModel.AssessmentQuestionModel{},
		&asmModel.AssessmentUserModel{},
		&asmModel.AssessmentStatusHistoryModel{},
		&model.AnswerModel{},
		&clModel.ChangelogModel{},
	}
}

func Migrate(db *gorm.DB) error {
	log.Println("🛠  AutoMigrate...")
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	log.Println("✅ AutoMigrate selesai.")
	return nil
}
