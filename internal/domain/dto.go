package domain

import (
	"time"

	"github.com/google/uuid"
)

// ---- Request DTOs ----

// SignupRequest creates a new company (tenant) with its first admin user
type SignupRequest struct {
	CompanyName string `json:"companyName" validate:"required,max=200"`
	AdminName   string `json:"adminName" validate:"required,max=200"`
	AdminEmail  string `json:"adminEmail" validate:"required,email"`
}

// CreateUserRequest creates a user within the caller's company
type CreateUserRequest struct {
	Name      string     `json:"name" validate:"required,max=200"`
	Email     string     `json:"email" validate:"required,email"`
	Role      UserRole   `json:"role" validate:"required,oneof=ADMIN MANAGER EMPLOYEE"`
	ManagerID *uuid.UUID `json:"managerId,omitempty"`
}

// UpdateUserRequest updates a user's mutable fields
type UpdateUserRequest struct {
	Name      string     `json:"name" validate:"required,max=200"`
	Role      UserRole   `json:"role" validate:"required,oneof=ADMIN MANAGER EMPLOYEE"`
	ManagerID *uuid.UUID `json:"managerId,omitempty"`
	IsActive  *bool      `json:"isActive,omitempty"`
}

// CreateQuestionRequest adds a question to the company's question bank
type CreateQuestionRequest struct {
	ReviewType ReviewType   `json:"reviewType" validate:"required,oneof=SELF MANAGER PEER"`
	Kind       QuestionKind `json:"kind" validate:"required,oneof=RATING TEXT TASK_LIST"`
	Text       string       `json:"text" validate:"required,max=1000"`
	MaxChars   *int         `json:"maxChars,omitempty" validate:"omitempty,gt=0"`
}

// UpdateQuestionRequest updates a question's prompt and limits
type UpdateQuestionRequest struct {
	Text     string `json:"text" validate:"required,max=1000"`
	MaxChars *int   `json:"maxChars,omitempty" validate:"omitempty,gt=0"`
}

// ReorderQuestionsRequest rewrites the display order for one review type.
// QuestionIDs must contain every question of that type exactly once.
type ReorderQuestionsRequest struct {
	ReviewType  ReviewType  `json:"reviewType" validate:"required,oneof=SELF MANAGER PEER"`
	QuestionIDs []uuid.UUID `json:"questionIds" validate:"required,min=1"`
}

// ReviewConfigInput is one workflow step in a create/replace request
type ReviewConfigInput struct {
	StepNumber int        `json:"stepNumber" validate:"gte=0"`
	ReviewType ReviewType `json:"reviewType" validate:"required,oneof=SELF MANAGER PEER"`
	StartDate  time.Time  `json:"startDate" validate:"required"`
	EndDate    time.Time  `json:"endDate" validate:"required"`
}

// CreateCycleRequest creates a DRAFT review cycle with its workflow steps
type CreateCycleRequest struct {
	Name          string              `json:"name" validate:"required,max=200"`
	StartDate     time.Time           `json:"startDate" validate:"required"`
	EndDate       time.Time           `json:"endDate" validate:"required"`
	ReviewConfigs []ReviewConfigInput `json:"reviewConfigs" validate:"required,min=1,max=3,dive"`
}

// UpdateCycleRequest updates a DRAFT cycle's name and window
type UpdateCycleRequest struct {
	Name      string    `json:"name" validate:"required,max=200"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}

// ReplaceConfigsRequest replaces the full workflow step set of a DRAFT cycle
type ReplaceConfigsRequest struct {
	ReviewConfigs []ReviewConfigInput `json:"reviewConfigs" validate:"required,min=1,max=3,dive"`
}

// AssignmentInput is one reviewer edge in an upsert request
type AssignmentInput struct {
	ReviewerID   uuid.UUID    `json:"reviewerId" validate:"required"`
	ReviewerType ReviewerType `json:"reviewerType" validate:"required,oneof=MANAGER PEER"`
}

// UpsertAssignmentsRequest replaces an employee's reviewer set for a cycle
type UpsertAssignmentsRequest struct {
	ReviewCycleID uuid.UUID         `json:"reviewCycleId" validate:"required"`
	EmployeeID    uuid.UUID         `json:"employeeId" validate:"required"`
	Assignments   []AssignmentInput `json:"assignments" validate:"dive"`
}

// AssignmentImportRow is one email-addressed row of a bulk import
type AssignmentImportRow struct {
	EmployeeEmail string       `json:"employeeEmail" validate:"required,email"`
	ReviewerEmail string       `json:"reviewerEmail" validate:"required,email"`
	ReviewerType  ReviewerType `json:"reviewerType" validate:"required,oneof=MANAGER PEER"`
}

// ImportAssignmentsRequest is a best-effort batch of assignment rows
type ImportAssignmentsRequest struct {
	ReviewCycleID uuid.UUID             `json:"reviewCycleId" validate:"required"`
	Rows          []AssignmentImportRow `json:"rows" validate:"required,min=1,dive"`
}

// StartReviewRequest creates a manager or peer review from an assignment
type StartReviewRequest struct {
	ReviewCycleID uuid.UUID  `json:"reviewCycleId" validate:"required"`
	EmployeeID    uuid.UUID  `json:"employeeId" validate:"required"`
	ReviewType    ReviewType `json:"reviewType" validate:"required,oneof=MANAGER PEER"`
}

// AnswerInput is one answer in an upsert batch
type AnswerInput struct {
	QuestionID uuid.UUID `json:"questionId" validate:"required"`
	Rating     *int      `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	TextAnswer *string   `json:"textAnswer,omitempty"`
	TaskList   *TaskList `json:"taskList,omitempty"`
}

// UpsertAnswersRequest writes answers into a DRAFT review
type UpsertAnswersRequest struct {
	Answers []AnswerInput `json:"answers" validate:"required,min=1,dive"`
}

// ---- Response DTOs ----

// CompanyDTO is the API representation of a company
type CompanyDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserDTO is the API representation of a user
type UserDTO struct {
	ID        uuid.UUID  `json:"id"`
	CompanyID uuid.UUID  `json:"companyId"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      UserRole   `json:"role"`
	ManagerID *uuid.UUID `json:"managerId,omitempty"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
}

// QuestionDTO is the API representation of a question
type QuestionDTO struct {
	ID         uuid.UUID    `json:"id"`
	ReviewType ReviewType   `json:"reviewType"`
	Kind       QuestionKind `json:"kind"`
	Text       string       `json:"text"`
	MaxChars   *int         `json:"maxChars,omitempty"`
	Order      int          `json:"order"`
}

// ReviewConfigDTO is the API representation of a workflow step
type ReviewConfigDTO struct {
	ID         uuid.UUID  `json:"id"`
	StepNumber int        `json:"stepNumber"`
	ReviewType ReviewType `json:"reviewType"`
	StartDate  time.Time  `json:"startDate"`
	EndDate    time.Time  `json:"endDate"`
}

// CycleDTO is the API representation of a review cycle with its steps
type CycleDTO struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	StartDate time.Time         `json:"startDate"`
	EndDate   time.Time         `json:"endDate"`
	Status    CycleStatus       `json:"status"`
	Configs   []ReviewConfigDTO `json:"reviewConfigs"`
	CreatedAt time.Time         `json:"createdAt"`
}

// AssignmentDTO is the API representation of a reviewer assignment
type AssignmentDTO struct {
	ID            uuid.UUID    `json:"id"`
	ReviewCycleID uuid.UUID    `json:"reviewCycleId"`
	EmployeeID    uuid.UUID    `json:"employeeId"`
	ReviewerID    uuid.UUID    `json:"reviewerId"`
	ReviewerName  string       `json:"reviewerName,omitempty"`
	ReviewerType  ReviewerType `json:"reviewerType"`
}

// ImportResultDTO accumulates the outcome of a best-effort batch.
// Partial failure is data, not an HTTP error.
type ImportResultDTO struct {
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
}

// AnswerDTO is the API representation of an answer
type AnswerDTO struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"questionId"`
	Rating     *int      `json:"rating,omitempty"`
	TextAnswer string    `json:"textAnswer,omitempty"`
	TaskList   *TaskList `json:"taskList,omitempty"`
}

// ReviewDTO is the API representation of a review with its answers
type ReviewDTO struct {
	ID            uuid.UUID    `json:"id"`
	ReviewCycleID uuid.UUID    `json:"reviewCycleId"`
	EmployeeID    uuid.UUID    `json:"employeeId"`
	ReviewerID    uuid.UUID    `json:"reviewerId"`
	ReviewType    ReviewType   `json:"reviewType"`
	Status        ReviewStatus `json:"status"`
	SubmittedAt   *time.Time   `json:"submittedAt,omitempty"`
	Answers       []AnswerDTO  `json:"answers"`
}

// QuestionScoreDTO is the per-question breakdown row of a final score.
// OverallAvg is the mean of the non-null per-type averages for this
// question alone; missing types are excluded from the denominator.
type QuestionScoreDTO struct {
	QuestionID   uuid.UUID `json:"questionId"`
	QuestionText string    `json:"questionText"`
	SelfScore    *float64  `json:"selfScore"`
	ManagerAvg   *float64  `json:"managerAvg"`
	PeerAvg      *float64  `json:"peerAvg"`
	OverallAvg   *float64  `json:"overallAvg"`
}

// FinalScoreDTO is the computed performance score for one employee in one
// cycle. Type-level scores are null (not zero) when no submitted reviews
// of that type exist, and null types are excluded from the overall mean.
type FinalScoreDTO struct {
	EmployeeID        uuid.UUID          `json:"employeeId"`
	EmployeeName      string             `json:"employeeName"`
	ReviewCycleID     uuid.UUID          `json:"reviewCycleId"`
	SelfScore         *float64           `json:"selfScore"`
	ManagerScore      *float64           `json:"managerScore"`
	PeerScore         *float64           `json:"peerScore"`
	OverallScore      *float64           `json:"overallScore"`
	QuestionBreakdown []QuestionScoreDTO `json:"questionBreakdown"`
	Warnings          []string           `json:"warnings"`
}

// NotificationDTO is the API representation of a notification
type NotificationDTO struct {
	ID         uuid.UUID  `json:"id"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Read       bool       `json:"read"`
	ReadAt     *time.Time `json:"readAt,omitempty"`
	EntityID   *uuid.UUID `json:"entityId,omitempty"`
	EntityType string     `json:"entityType,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ScoreReportDTO is the API representation of an exported report
type ScoreReportDTO struct {
	ID            uuid.UUID `json:"id"`
	ReviewCycleID uuid.UUID `json:"reviewCycleId"`
	Filename      string    `json:"filename"`
	StoragePath   string    `json:"storagePath"`
	Size          int64     `json:"size"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PaginatedResponse wraps a paginated list result
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}
