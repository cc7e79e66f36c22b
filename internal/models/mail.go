package models

// MailJob — сообщение очереди исходящей почты.
//
// Kind определяет шаблон письма: "reset_password" или "verify_email".
// Token — соответствующий одноразовый JWT, подставляется в ссылку письма.
type MailJob struct {
	Kind  string `json:"kind"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Виды почтовых заданий.
const (
	MailKindResetPassword = "reset_password"
	MailKindVerifyEmail   = "verify_email"
)
