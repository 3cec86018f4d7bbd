package dto

type CredentialsReq struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type RegisterResp struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

type LoginResp struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
