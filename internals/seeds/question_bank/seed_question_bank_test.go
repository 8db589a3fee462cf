package question_bank

import (
	"context"
	"os"
	"testing"

	qModel "assessku_backend/internals/features/questions/questions/model"
	"assessku_backend/internals/features/questions/questions/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestParseSampleBank(t *testing.T) {
	raw, err := os.ReadFile("question_bank.yaml")
	require.NoError(t, err)

	bank, err := ParseQuestionBank(raw)
	require.NoError(t, err)
	require.Len(t, bank.Questions, 5)
	assert.Equal(t, "Governance", bank.Questions[0].Pillar)
	assert.Len(t, bank.Questions[0].Ratings, 5)
}

func TestParseRejectsBadBank(t *testing.T) {
	cases := map[string]string{
		"duplicate number": "questions:\n  - {number: 1, text: a}\n  - {number: 1, text: b}\n",
		"empty text":       "questions:\n  - {number: 1, text: \" \"}\n",
		"level range":      "questions:\n  - number: 1\n    text: a\n    ratings: [{level: 6, criteria: x}]\n",
		"level duplicate":  "questions:\n  - number: 1\n    text: a\n    ratings: [{level: 2, criteria: x}, {level: 2, criteria: y}]\n",
		"priority":         "questions:\n  - {number: 1, text: a, priority: urgent}\n",
		"not yaml":         "questions: [",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseQuestionBank([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&qModel.QuestionModel{}, &qModel.RatingModel{}))

	raw, err := os.ReadFile("question_bank.yaml")
	require.NoError(t, err)
	bank, err := ParseQuestionBank(raw)
	require.NoError(t, err)

	ctx := context.Background()
	ins, skip, err := SeedQuestionBank(ctx, db, bank)
	require.NoError(t, err)
	assert.Equal(t, 5, ins)
	assert.Equal(t, 0, skip)

	ins, skip, err = SeedQuestionBank(ctx, db, bank)
	require.NoError(t, err)
	assert.Equal(t, 0, ins)
	assert.Equal(t, 5, skip)

	var first qModel.QuestionModel
	require.NoError(t, db.Where("question_number = ?", 1).First(&first).Error)
	ratings, err := service.NewQuestionService(db).Ratings(ctx, first.QuestionID)
	require.NoError(t, err)
	require.Len(t, ratings, 5)
	assert.Equal(t, 1, ratings[0].RatingLevel)
	assert.Nil(t, ratings[0].RatingProgression)
	require.NotNil(t, ratings[1].RatingProgression)
}
