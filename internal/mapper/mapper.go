package mapper

import (
	"github.com/perfcycle/review-api/internal/domain"
)

// ToCompanyDTO converts a Company entity to its API representation
func ToCompanyDTO(c *domain.Company) *domain.CompanyDTO {
	if c == nil {
		return nil
	}
	return &domain.CompanyDTO{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

// ToUserDTO converts a User entity to its API representation
func ToUserDTO(u *domain.User) *domain.UserDTO {
	if u == nil {
		return nil
	}
	return &domain.UserDTO{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		ManagerID: u.ManagerID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []domain.User) []domain.UserDTO {
	dtos := make([]domain.UserDTO, len(users))
	for i := range users {
		dtos[i] = *ToUserDTO(&users[i])
	}
	return dtos
}

// ToQuestionDTO converts a Question entity to its API representation
func ToQuestionDTO(q *domain.Question) *domain.QuestionDTO {
	if q == nil {
		return nil
	}
	return &domain.QuestionDTO{
		ID:         q.ID,
		ReviewType: q.ReviewType,
		Kind:       q.Kind,
		Text:       q.Text,
		MaxChars:   q.MaxChars,
		Order:      q.DisplayOrder,
	}
}

// ToQuestionDTOs converts a slice of questions
func ToQuestionDTOs(questions []domain.Question) []domain.QuestionDTO {
	dtos := make([]domain.QuestionDTO, len(questions))
	for i := range questions {
		dtos[i] = *ToQuestionDTO(&questions[i])
	}
	return dtos
}

// ToReviewConfigDTO converts a workflow step to its API representation
func ToReviewConfigDTO(c *domain.ReviewConfig) *domain.ReviewConfigDTO {
	if c == nil {
		return nil
	}
	return &domain.ReviewConfigDTO{
		ID:         c.ID,
		StepNumber: c.StepNumber,
		ReviewType: c.ReviewType,
		StartDate:  c.StartDate,
		EndDate:    c.EndDate,
	}
}

// ToCycleDTO converts a ReviewCycle entity with its steps
func ToCycleDTO(c *domain.ReviewCycle) *domain.CycleDTO {
	if c == nil {
		return nil
	}
	configs := make([]domain.ReviewConfigDTO, len(c.Configs))
	for i := range c.Configs {
		configs[i] = *ToReviewConfigDTO(&c.Configs[i])
	}
	return &domain.CycleDTO{
		ID:        c.ID,
		Name:      c.Name,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		Status:    c.Status,
		Configs:   configs,
		CreatedAt: c.CreatedAt,
	}
}

// ToCycleDTOs converts a slice of cycles
func ToCycleDTOs(cycles []domain.ReviewCycle) []domain.CycleDTO {
	dtos := make([]domain.CycleDTO, len(cycles))
	for i := range cycles {
		dtos[i] = *ToCycleDTO(&cycles[i])
	}
	return dtos
}

// ToAssignmentDTO converts a ReviewerAssignment entity
func ToAssignmentDTO(a *domain.ReviewerAssignment) *domain.AssignmentDTO {
	if a == nil {
		return nil
	}
	dto := &domain.AssignmentDTO{
		ID:            a.ID,
		ReviewCycleID: a.ReviewCycleID,
		EmployeeID:    a.EmployeeID,
		ReviewerID:    a.ReviewerID,
		ReviewerType:  a.ReviewerType,
	}
	if a.Reviewer != nil {
		dto.ReviewerName = a.Reviewer.Name
	}
	return dto
}

// ToAssignmentDTOs converts a slice of assignments
func ToAssignmentDTOs(assignments []domain.ReviewerAssignment) []domain.AssignmentDTO {
	dtos := make([]domain.AssignmentDTO, len(assignments))
	for i := range assignments {
		dtos[i] = *ToAssignmentDTO(&assignments[i])
	}
	return dtos
}

// ToAnswerDTO converts an Answer entity. TASK_LIST answers are stored as
// JSON text; decoding failures fall back to the raw text so a malformed
// row never hides the rest of the review.
func ToAnswerDTO(a *domain.Answer, kind domain.QuestionKind) *domain.AnswerDTO {
	if a == nil {
		return nil
	}
	dto := &domain.AnswerDTO{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		Rating:     a.Rating,
	}
	if kind == domain.QuestionKindTaskList && a.TextAnswer != "" {
		if tl, err := domain.DecodeTaskList(a.TextAnswer); err == nil {
			dto.TaskList = tl
			return dto
		}
	}
	dto.TextAnswer = a.TextAnswer
	return dto
}

// ToReviewDTO converts a Review entity with its answers. questionKinds maps
// question IDs to their kind so task-list answers decode properly.
func ToReviewDTO(r *domain.Review, questionKinds map[string]domain.QuestionKind) *domain.ReviewDTO {
	if r == nil {
		return nil
	}
	answers := make([]domain.AnswerDTO, len(r.Answers))
	for i := range r.Answers {
		kind := questionKinds[r.Answers[i].QuestionID.String()]
		answers[i] = *ToAnswerDTO(&r.Answers[i], kind)
	}
	return &domain.ReviewDTO{
		ID:            r.ID,
		ReviewCycleID: r.ReviewCycleID,
		EmployeeID:    r.EmployeeID,
		ReviewerID:    r.ReviewerID,
		ReviewType:    r.ReviewType,
		Status:        r.Status,
		SubmittedAt:   r.SubmittedAt,
		Answers:       answers,
	}
}

// ToNotificationDTO converts a Notification entity
func ToNotificationDTO(n *domain.Notification) *domain.NotificationDTO {
	if n == nil {
		return nil
	}
	return &domain.NotificationDTO{
		ID:         n.ID,
		Type:       n.Type,
		Title:      n.Title,
		Message:    n.Message,
		Read:       n.Read,
		ReadAt:     n.ReadAt,
		EntityID:   n.EntityID,
		EntityType: n.EntityType,
		CreatedAt:  n.CreatedAt,
	}
}

// ToNotificationDTOs converts a slice of notifications
func ToNotificationDTOs(notifications []domain.Notification) []domain.NotificationDTO {
	dtos := make([]domain.NotificationDTO, len(notifications))
	for i := range notifications {
		dtos[i] = *ToNotificationDTO(&notifications[i])
	}
	return dtos
}

// ToScoreReportDTO converts a ScoreReport entity
func ToScoreReportDTO(r *domain.ScoreReport) *domain.ScoreReportDTO {
	if r == nil {
		return nil
	}
	return &domain.ScoreReportDTO{
		ID:            r.ID,
		ReviewCycleID: r.ReviewCycleID,
		Filename:      r.Filename,
		StoragePath:   r.StoragePath,
		Size:          r.Size,
		CreatedAt:     r.CreatedAt,
	}
}
