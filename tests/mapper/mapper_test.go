package mapper_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/domain"
	"github.com/perfcycle/review-api/internal/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ratingPtr(r int) *int { return &r }

func TestToReviewDTO(t *testing.T) {
	ratingQ := uuid.New()
	textQ := uuid.New()
	taskQ := uuid.New()
	kinds := map[string]domain.QuestionKind{
		ratingQ.String(): domain.QuestionKindRating,
		textQ.String():   domain.QuestionKindText,
		taskQ.String():   domain.QuestionKindTaskList,
	}

	taskJSON, err := (&domain.TaskList{Tasks: []domain.TaskItem{
		{Text: "Ship the feature", Completed: true},
	}}).Encode()
	require.NoError(t, err)

	submittedAt := time.Now().UTC()
	review := &domain.Review{
		BaseModel:     domain.BaseModel{ID: uuid.New()},
		ReviewCycleID: uuid.New(),
		EmployeeID:    uuid.New(),
		ReviewerID:    uuid.New(),
		ReviewType:    domain.ReviewTypePeer,
		Status:        domain.ReviewStatusSubmitted,
		SubmittedAt:   &submittedAt,
		Answers: []domain.Answer{
			{QuestionID: ratingQ, Rating: ratingPtr(4)},
			{QuestionID: textQ, TextAnswer: "Strong quarter"},
			{QuestionID: taskQ, TextAnswer: taskJSON},
		},
	}

	dto := mapper.ToReviewDTO(review, kinds)
	require.NotNil(t, dto)
	assert.Equal(t, domain.ReviewStatusSubmitted, dto.Status)
	require.NotNil(t, dto.SubmittedAt)
	require.Len(t, dto.Answers, 3)

	t.Run("rating answer keeps its value", func(t *testing.T) {
		require.NotNil(t, dto.Answers[0].Rating)
		assert.Equal(t, 4, *dto.Answers[0].Rating)
		assert.Nil(t, dto.Answers[0].TaskList)
	})

	t.Run("text answer passes through", func(t *testing.T) {
		assert.Equal(t, "Strong quarter", dto.Answers[1].TextAnswer)
	})

	t.Run("task list answer decodes from storage", func(t *testing.T) {
		require.NotNil(t, dto.Answers[2].TaskList)
		require.Len(t, dto.Answers[2].TaskList.Tasks, 1)
		assert.Equal(t, "Ship the feature", dto.Answers[2].TaskList.Tasks[0].Text)
		assert.True(t, dto.Answers[2].TaskList.Tasks[0].Completed)
		assert.Empty(t, dto.Answers[2].TextAnswer)
	})
}

func TestToAnswerDTO_MalformedTaskList(t *testing.T) {
	answer := &domain.Answer{QuestionID: uuid.New(), TextAnswer: "not json"}

	dto := mapper.ToAnswerDTO(answer, domain.QuestionKindTaskList)
	require.NotNil(t, dto)
	assert.Nil(t, dto.TaskList)
	assert.Equal(t, "not json", dto.TextAnswer)
}

func TestToCycleDTO(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	cycle := &domain.ReviewCycle{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		Name:      "Q1 2026",
		StartDate: start,
		EndDate:   end,
		Status:    domain.CycleStatusDraft,
		Configs: []domain.ReviewConfig{
			{StepNumber: 0, ReviewType: domain.ReviewTypeSelf, StartDate: start, EndDate: end},
			{StepNumber: 1, ReviewType: domain.ReviewTypePeer, StartDate: start, EndDate: end},
		},
	}

	dto := mapper.ToCycleDTO(cycle)
	require.NotNil(t, dto)
	assert.Equal(t, "Q1 2026", dto.Name)
	require.Len(t, dto.Configs, 2)
	assert.Equal(t, domain.ReviewTypePeer, dto.Configs[1].ReviewType)
}

func TestNilEntitiesMapToNil(t *testing.T) {
	assert.Nil(t, mapper.ToCompanyDTO(nil))
	assert.Nil(t, mapper.ToUserDTO(nil))
	assert.Nil(t, mapper.ToQuestionDTO(nil))
	assert.Nil(t, mapper.ToCycleDTO(nil))
	assert.Nil(t, mapper.ToReviewDTO(nil, nil))
	assert.Nil(t, mapper.ToNotificationDTO(nil))
	assert.Nil(t, mapper.ToScoreReportDTO(nil))
}
