package models

// User is the signed-in dashboard user (mentor, teacher or admin)
type User struct {
	ID     string   `json:"id" example:"1"`
	Email  string   `json:"email" example:"jane.doe@school.edu"`
	Name   string   `json:"name" example:"Jane Doe"`
	Role   RoleType `json:"role" example:"teacher" enums:"admin,mentor,teacher"`
	Avatar string   `json:"avatar,omitempty"`
}
