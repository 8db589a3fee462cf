package route

import (
	"assessku_backend/internals/features/assessments/access"
	answerController "assessku_backend/internals/features/assessments/answers/controller"
	"assessku_backend/internals/features/assessments/assessments/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AssessmentUserRoutes(user fiber.Router, db *gorm.DB) {
	assessmentCtrl := controller.NewAssessmentController(db)
	answerCtrl := answerController.NewAnswerController(db)

	resolve := assessmentCtrl.ResolveTarget
	detail := access.Guard(access.PageAssessmentDetail, resolve)

	// Group: /assessments
	assessments := user.Group("/assessments")
	assessments.Get("/", access.Guard(access.PageAssessmentList, nil), assessmentCtrl.List) // 📄 Assessment saya
	assessments.Get("/:id", detail, assessmentCtrl.Detail)                                 // 🔍 Detail + riwayat status
	assessments.Get("/:id/pages", detail, assessmentCtrl.Pages)                            // 🧭 Menu halaman yang boleh dibuka
	assessments.Get("/:id/answers", detail, answerCtrl.List)                                    // 🗂 Ringkasan semua jawaban
	assessments.Post("/:id/submit", access.Guard(access.PageAssessmentSubmit, resolve), assessmentCtrl.Submit)

	// answer: didaftarkan sebelum /:questionId/:direction supaya tidak tertangkap
	assessments.Get("/:id/questions/:questionId/answer/changelog",
		access.Guard(access.PageAnswerChangelog, resolve), answerCtrl.History) // 🕓 Riwayat jawaban (?as_of=)
	assessments.Put("/:id/questions/:questionId/answer/:stage",
		access.GuardFunc(access.StageParamPage("stage"), resolve), answerCtrl.WriteStage) // ✏️ Tulis satu stage

	assessments.Get("/:id/questions", detail, assessmentCtrl.Questions)                              // 📋 Daftar soal urut
	assessments.Get("/:id/questions/:questionId", detail, assessmentCtrl.CurrentQuestion)            // 📌 Soal + jawaban + rubrik
	assessments.Get("/:id/questions/:questionId/:direction", detail, assessmentCtrl.Navigate) // ⏭ previous / next
}
