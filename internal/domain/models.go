package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// Company is the tenant root. Every other entity belongs to exactly one
// company and all queries are scoped by company_id.
type Company struct {
	BaseModel
	Name string `gorm:"type:varchar(200);not null"`
	// DirectoryCode links the company to its HR directory dataset.
	// Empty means the company is not synced from the directory.
	DirectoryCode string `gorm:"type:varchar(50);index;column:directory_code"`
}

// UserRole represents the role a user has within their company
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleManager  UserRole = "MANAGER"
	RoleEmployee UserRole = "EMPLOYEE"
)

// IsValid checks if the UserRole is a valid enum value
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// User represents a person in a company's directory.
// ManagerID is a nullable self-reference: one manager, many direct reports.
type User struct {
	BaseModel
	CompanyID  uuid.UUID  `gorm:"type:uuid;not null;index;column:company_id"`
	Company    *Company   `gorm:"foreignKey:CompanyID"`
	Name       string     `gorm:"type:varchar(200);not null"`
	Email      string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	Role       UserRole   `gorm:"type:varchar(20);not null;default:'EMPLOYEE';index"`
	ManagerID  *uuid.UUID `gorm:"type:uuid;index;column:manager_id"`
	Manager    *User      `gorm:"foreignKey:ManagerID"`
	ExternalID string     `gorm:"type:varchar(100);index;column:external_id"` // identity-provider subject
	IsActive   bool       `gorm:"not null;default:true;column:is_active"`
}

// ReviewType classifies who is reviewing whom
type ReviewType string

const (
	ReviewTypeSelf    ReviewType = "SELF"
	ReviewTypeManager ReviewType = "MANAGER"
	ReviewTypePeer    ReviewType = "PEER"
)

// IsValid checks if the ReviewType is a valid enum value
func (rt ReviewType) IsValid() bool {
	switch rt {
	case ReviewTypeSelf, ReviewTypeManager, ReviewTypePeer:
		return true
	}
	return false
}

// QuestionKind determines the answer shape a question collects
type QuestionKind string

const (
	QuestionKindRating   QuestionKind = "RATING"
	QuestionKindText     QuestionKind = "TEXT"
	QuestionKindTaskList QuestionKind = "TASK_LIST"
)

// IsValid checks if the QuestionKind is a valid enum value
func (k QuestionKind) IsValid() bool {
	switch k {
	case QuestionKindRating, QuestionKindText, QuestionKindTaskList:
		return true
	}
	return false
}

// Question belongs to a company's question bank for one review type.
// DisplayOrder is dense per (company, review type); a reorder operation
// rewrites it 0..n-1.
type Question struct {
	BaseModel
	CompanyID    uuid.UUID    `gorm:"type:uuid;not null;index;column:company_id"`
	ReviewType   ReviewType   `gorm:"type:varchar(20);not null;index;column:review_type"`
	Kind         QuestionKind `gorm:"type:varchar(20);not null;column:question_kind"`
	Text         string       `gorm:"type:varchar(1000);not null"`
	MaxChars     *int         `gorm:"column:max_chars"`
	DisplayOrder int          `gorm:"not null;default:0;column:display_order"`
}

// CycleStatus represents the lifecycle state of a review cycle
type CycleStatus string

const (
	CycleStatusDraft     CycleStatus = "DRAFT"
	CycleStatusActive    CycleStatus = "ACTIVE"
	CycleStatusCompleted CycleStatus = "COMPLETED"
)

// IsValid checks if the CycleStatus is a valid enum value
func (s CycleStatus) IsValid() bool {
	switch s {
	case CycleStatusDraft, CycleStatusActive, CycleStatusCompleted:
		return true
	}
	return false
}

// ReviewCycle is a time-boxed review period. Lifecycle is forward-only:
// DRAFT -> ACTIVE -> COMPLETED. Only DRAFT cycles are mutable or deletable.
type ReviewCycle struct {
	BaseModel
	CompanyID uuid.UUID      `gorm:"type:uuid;not null;index;column:company_id"`
	Name      string         `gorm:"type:varchar(200);not null"`
	StartDate time.Time      `gorm:"type:date;not null;column:start_date"`
	EndDate   time.Time      `gorm:"type:date;not null;column:end_date"`
	Status    CycleStatus    `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	Configs   []ReviewConfig `gorm:"foreignKey:ReviewCycleID;constraint:OnDelete:CASCADE"`
}

// ReviewConfig is a workflow step: a sub-window within a cycle dedicated
// to one review type. 1-3 steps per cycle, at most one SELF step, and each
// step's window must lie within the parent cycle's range.
type ReviewConfig struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ReviewCycleID uuid.UUID  `gorm:"type:uuid;not null;index;column:review_cycle_id"`
	StepNumber    int        `gorm:"not null;column:step_number"`
	ReviewType    ReviewType `gorm:"type:varchar(20);not null;column:review_type"`
	StartDate     time.Time  `gorm:"type:date;not null;column:start_date"`
	EndDate       time.Time  `gorm:"type:date;not null;column:end_date"`
	CreatedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// ReviewerType classifies a reviewer assignment edge
type ReviewerType string

const (
	ReviewerTypeManager ReviewerType = "MANAGER"
	ReviewerTypePeer    ReviewerType = "PEER"
)

// IsValid checks if the ReviewerType is a valid enum value
func (rt ReviewerType) IsValid() bool {
	switch rt {
	case ReviewerTypeManager, ReviewerTypePeer:
		return true
	}
	return false
}

// ReviewerAssignment is a directed edge from an employee (the review
// subject) to a reviewer, typed MANAGER or PEER, within one cycle.
type ReviewerAssignment struct {
	ID            uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CompanyID     uuid.UUID    `gorm:"type:uuid;not null;index;column:company_id"`
	ReviewCycleID uuid.UUID    `gorm:"type:uuid;not null;index;column:review_cycle_id;uniqueIndex:idx_assignment_edge"`
	EmployeeID    uuid.UUID    `gorm:"type:uuid;not null;index;column:employee_id;uniqueIndex:idx_assignment_edge"`
	Employee      *User        `gorm:"foreignKey:EmployeeID"`
	ReviewerID    uuid.UUID    `gorm:"type:uuid;not null;index;column:reviewer_id;uniqueIndex:idx_assignment_edge"`
	Reviewer      *User        `gorm:"foreignKey:ReviewerID"`
	ReviewerType  ReviewerType `gorm:"type:varchar(20);not null;column:reviewer_type;uniqueIndex:idx_assignment_edge"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// ReviewStatus represents the state of a single review response
type ReviewStatus string

const (
	ReviewStatusDraft     ReviewStatus = "DRAFT"
	ReviewStatusSubmitted ReviewStatus = "SUBMITTED"
)

// Review is one reviewer's response instance for one employee in one cycle.
// Unique per (cycle, employee, reviewer, review type). SUBMITTED is
// terminal: once set, answers are frozen.
type Review struct {
	BaseModel
	ReviewCycleID uuid.UUID    `gorm:"type:uuid;not null;column:review_cycle_id;uniqueIndex:idx_review_key"`
	CompanyID     uuid.UUID    `gorm:"type:uuid;not null;index;column:company_id"`
	EmployeeID    uuid.UUID    `gorm:"type:uuid;not null;index;column:employee_id;uniqueIndex:idx_review_key"`
	ReviewerID    uuid.UUID    `gorm:"type:uuid;not null;index;column:reviewer_id;uniqueIndex:idx_review_key"`
	ReviewType    ReviewType   `gorm:"type:varchar(20);not null;column:review_type;uniqueIndex:idx_review_key"`
	Status        ReviewStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	SubmittedAt   *time.Time   `gorm:"column:submitted_at"`
	Answers       []Answer     `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
}

// Answer is one response to one question within a review. Rating is set
// for RATING questions (1-5); TextAnswer carries free text, or the JSON
// encoding of a task list for TASK_LIST questions.
type Answer struct {
	BaseModel
	ReviewID   uuid.UUID `gorm:"type:uuid;not null;column:review_id;uniqueIndex:idx_answer_key"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;column:question_id;uniqueIndex:idx_answer_key"`
	Rating     *int      `gorm:"column:rating"`
	TextAnswer string    `gorm:"type:text;column:text_answer"`
}

// TaskItem is a single entry of a task-list answer
type TaskItem struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// TaskList is the structured form of a TASK_LIST answer. The wire and
// storage shape is {"tasks":[{"text":...,"completed":...}]} for
// compatibility with existing data.
type TaskList struct {
	Tasks []TaskItem `json:"tasks"`
}

// Encode serializes the task list to its storage form
func (tl *TaskList) Encode() (string, error) {
	data, err := json.Marshal(tl)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeTaskList parses a stored task-list answer
func DecodeTaskList(raw string) (*TaskList, error) {
	var tl TaskList
	if err := json.Unmarshal([]byte(raw), &tl); err != nil {
		return nil, err
	}
	return &tl, nil
}

// NotificationType represents the type of notification
type NotificationType string

const (
	NotificationTypeCycleStarted    NotificationType = "cycle_started"
	NotificationTypeReviewSubmitted NotificationType = "review_submitted"
	NotificationTypeScoreAvailable  NotificationType = "score_available"
	NotificationTypeStepDeadline    NotificationType = "step_deadline"
)

// Notification is an in-app notification for a user. Creation is always
// best-effort: a failed insert is logged and never propagated.
type Notification struct {
	BaseModel
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	CompanyID  uuid.UUID  `gorm:"type:uuid;not null;index;column:company_id"`
	Type       string     `gorm:"type:varchar(50);not null"`
	Title      string     `gorm:"type:varchar(200);not null"`
	Message    string     `gorm:"type:varchar(500);not null"`
	Read       bool       `gorm:"column:read;not null;default:false;index"`
	ReadAt     *time.Time `gorm:"column:read_at"`
	EntityID   *uuid.UUID `gorm:"type:uuid"`
	EntityType string     `gorm:"type:varchar(50)"`
}

// ScoreReport records an exported score report stored in the archive
// (local disk or blob storage).
type ScoreReport struct {
	BaseModel
	CompanyID     uuid.UUID `gorm:"type:uuid;not null;index;column:company_id"`
	ReviewCycleID uuid.UUID `gorm:"type:uuid;not null;index;column:review_cycle_id"`
	Filename      string    `gorm:"type:varchar(255);not null"`
	StoragePath   string    `gorm:"type:varchar(500);not null;unique"`
	Size          int64     `gorm:"not null"`
	GeneratedByID uuid.UUID `gorm:"type:uuid;column:generated_by_id"`
}
