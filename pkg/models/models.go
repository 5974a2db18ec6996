package models

import "time"

// User is an account that can own workspaces and be assigned tasks.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Username       string    `gorm:"size:100;not null" json:"username"`
	FullName       string    `gorm:"size:255" json:"full_name"`
	HashedPassword string    `gorm:"size:255;not null" json:"-"`
	AvatarURL      string    `gorm:"size:1024" json:"avatar_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Workspace groups boards, labels and members.
type Workspace struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	OwnerID   uint      `gorm:"index;not null" json:"owner_id"`
	Owner     *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkspaceMember links a user to a workspace with a role.
type WorkspaceMember struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	WorkspaceID uint       `gorm:"uniqueIndex:idx_workspace_member;not null" json:"workspace_id"`
	Workspace   *Workspace `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID      uint       `gorm:"uniqueIndex:idx_workspace_member;not null" json:"user_id"`
	User        *User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Role        string     `gorm:"size:32;default:member" json:"role"`
	JoinedAt    time.Time  `gorm:"autoCreateTime" json:"joined_at"`
}

// Board is a kanban board inside a workspace.
type Board struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	WorkspaceID uint       `gorm:"index;not null" json:"workspace_id"`
	Workspace   *Workspace `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Icon        string     `gorm:"size:64;default:dashboard" json:"icon"`
	IconColor   string     `gorm:"size:32" json:"icon_color"`
	Position    int        `gorm:"default:0" json:"position"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Column is an ordered lane on a board.
type Column struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BoardID   uint      `gorm:"index;not null" json:"board_id"`
	Board     *Board    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Position  int       `gorm:"default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName avoids a bare "columns" table next to information_schema.columns.
func (Column) TableName() string { return "board_columns" }

// Label is scoped either to a whole workspace or to a single board.
type Label struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	WorkspaceID *uint      `gorm:"index" json:"workspace_id,omitempty"`
	Workspace   *Workspace `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	BoardID     *uint      `gorm:"index" json:"board_id,omitempty"`
	Board       *Board     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Color       string     `gorm:"size:32" json:"color"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Task is a card on a board.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	BoardID     uint       `gorm:"index;not null" json:"board_id"`
	Board       *Board     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ColumnID    *uint      `gorm:"index" json:"column_id"`
	Column      *Column    `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Title       string     `gorm:"size:500;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"size:32;index;default:todo" json:"status"`
	Priority    string     `gorm:"size:32" json:"priority"`
	Position    int        `gorm:"default:0" json:"position"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	AssigneeID  *uint      `gorm:"index" json:"assignee_id,omitempty"`
	Assignee    *User      `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Images      []string   `gorm:"type:text;serializer:json" json:"images"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskLabel attaches a label to a task.
type TaskLabel struct {
	TaskID  uint   `gorm:"primaryKey" json:"task_id"`
	Task    *Task  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	LabelID uint   `gorm:"primaryKey" json:"label_id"`
	Label   *Label `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Comment is a user's note on a task.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TaskID    uint      `gorm:"index;not null" json:"task_id"`
	Task      *Task     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Images    []string  `gorm:"type:text;serializer:json" json:"images"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Activity records a board event published to the event stream.
type Activity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BoardID   *uint     `gorm:"index" json:"board_id,omitempty"`
	TaskID    *uint     `gorm:"index" json:"task_id,omitempty"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	Type      string    `gorm:"size:64;not null" json:"type"`
	Data      string    `gorm:"type:text" json:"data"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
