package models

// User is a registered commenter. Registered comments are not wired yet, so
// the table only exists to back Comment.User.
type User struct {
	Email           string  `json:"email" gorm:"primaryKey;type:text"`
	NickName        *string `json:"nickName" gorm:"column:nick_name;type:text"`
	PersonalWebsite *string `json:"personalWebsite" gorm:"column:personal_website;type:text"`
}
