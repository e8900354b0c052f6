package model

// UserRole 账号角色枚举
type UserRole string

const (
	RoleOwner  UserRole = "owner"  // 雇主，管理工人与考勤
	RoleWorker UserRole = "worker" // 工人自助账号，扫码打卡与查询
)

// User 账号模型。雇主和工人共用一张表，按 role 区分。
type User struct {
	BaseModel
	PublicID     int64    `gorm:"uniqueIndex;not null" json:"public_id"`
	Name         string   `gorm:"type:varchar(64);not null" json:"name"`
	Phone        string   `gorm:"uniqueIndex;type:varchar(20);not null" json:"phone"`
	PasswordHash string   `gorm:"type:varchar(72);not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(16);not null;index:idx_users_role" json:"role"`

	// 工人账号关联的工人档案 public_id；雇主账号为 nil
	WorkerPublicID *int64 `gorm:"index" json:"worker_public_id,omitempty"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// IsOwner 判断是否雇主账号
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}
